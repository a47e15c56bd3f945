package forecast

import (
	"fmt"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// TerrainSnapshot is the terrain state of the grid at one future turn.
// The transport layer flattens it before serialization; a struct-keyed
// map has no JSON form.
type TerrainSnapshot struct {
	Turn    int
	Terrain map[grid.Position]grid.Terrain
}

// CostAt returns the movement cost at a position in this snapshot,
// defaulting to the grass cost for positions the snapshot does not cover.
func (s TerrainSnapshot) CostAt(p grid.Position) float64 {
	if t, ok := s.Terrain[p]; ok {
		return grid.CostForTerrain(t)
	}
	return grid.CostForTerrain(grid.Grass)
}

// Future simulates the next turnsAhead turns of obstacle mutation for the
// grid and returns one terrain snapshot per future turn. The grid itself
// is cloned and never mutated; the simulation generator is rebuilt from
// the grid's obstacle seed and tracked draw count so it continues the
// live draw sequence exactly.
func Future(g *grid.Grid, turnsAhead int) ([]TerrainSnapshot, error) {
	if turnsAhead < 0 {
		return nil, fmt.Errorf("turns ahead must be non-negative, got %d", turnsAhead)
	}
	return Replay(g, g.ObstacleSeed(), g.ObstacleDraws(), turnsAhead), nil
}

// Replay simulates turnsAhead turns of mutation on a clone of the grid,
// driving it with a generator fast-forwarded to the given draw count.
// The pair must describe the grid's current state, as Future guarantees;
// an older draw count replayed against newer terrain diverges from the
// historical sequence.
func Replay(g *grid.Grid, seed int64, draws uint64, turnsAhead int) []TerrainSnapshot {
	clone := g.Clone()
	rng := grid.ReplayObstacleRand(seed, draws)

	snapshots := make([]TerrainSnapshot, 0, turnsAhead)
	for i := 0; i < turnsAhead; i++ {
		clone.AdvanceTurnWith(rng)
		snapshots = append(snapshots, TerrainSnapshot{
			Turn:    clone.Turn(),
			Terrain: clone.TerrainSnapshot(),
		})
	}
	return snapshots
}
