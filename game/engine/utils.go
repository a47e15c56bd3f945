package engine

import (
	"strings"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// terrainRunes maps terrain to the single character used in rendered
// maps.
var terrainRunes = map[grid.Terrain]rune{
	grid.Path:       '.',
	grid.Grass:      '.',
	grid.Rocks:      'r',
	grid.Water:      'w',
	grid.Thorns:     't',
	grid.Spikes:     's',
	grid.Mud:        'm',
	grid.Quicksand:  'q',
	grid.Lava:       'L',
	grid.Wall:       '#',
	grid.Start:      'S',
	grid.Goal:       'G',
	grid.Checkpoint: 'C',
	grid.Reward:     '+',
}

// RenderMap draws the maze as the agent knows it, one row per line.
// Undiscovered cells render as '?', walls as '#', and the agent as '@'.
// With overlay set, the given path is drawn with '*'.
func (e *Engine) RenderMap(overlay []grid.Position) string {
	onPath := make(map[grid.Position]bool, len(overlay))
	for _, p := range overlay {
		onPath[p] = true
	}

	var b strings.Builder
	for y := 0; y < e.grid.Height; y++ {
		for x := 0; x < e.grid.Width; x++ {
			p := grid.Position{X: x, Y: y}
			switch {
			case p == e.agent:
				b.WriteRune('@')
			case e.mask != nil && !e.mask[p]:
				b.WriteRune('?')
			case onPath[p]:
				b.WriteRune('*')
			case !e.grid.IsOpen(p):
				b.WriteRune('#')
			default:
				r, ok := terrainRunes[e.grid.TerrainAt(p)]
				if !ok {
					r = '.'
				}
				b.WriteRune(r)
			}
		}
		if y < e.grid.Height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// NearestCheckpoint returns the closest unvisited checkpoint to the
// agent by Manhattan distance.
func (e *Engine) NearestCheckpoint() (grid.Position, int, bool) {
	minDistance := -1
	var nearest grid.Position
	found := false

	for _, cp := range e.RemainingCheckpoints() {
		distance := grid.ManhattanDistance(e.agent, cp)
		if minDistance == -1 || distance < minDistance {
			minDistance = distance
			nearest = cp
			found = true
		}
	}
	return nearest, minDistance, found
}

// ExplorationProgress returns the fraction of open cells the agent has
// discovered, 1 when playing without fog.
func (e *Engine) ExplorationProgress() float64 {
	if e.mask == nil {
		return 1
	}

	open, seen := 0, 0
	for y := 0; y < e.grid.Height; y++ {
		for x := 0; x < e.grid.Width; x++ {
			p := grid.Position{X: x, Y: y}
			if !e.grid.IsOpen(p) {
				continue
			}
			open++
			if e.mask[p] {
				seen++
			}
		}
	}
	if open == 0 {
		return 0
	}
	return float64(seen) / float64(open)
}

// sortedPositionSet flattens a position set into deterministic (y, x)
// order.
func sortedPositionSet(set map[grid.Position]bool) []grid.Position {
	out := make([]grid.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
