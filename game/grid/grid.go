package grid

import "math"

// Grid represents one generated maze: open/wall cells, per-cell terrain,
// and the dynamic obstacle state that mutates between turns. The
// pathfinding engine borrows a Grid per query and never retains it.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	open    [][]bool
	terrain map[Position]Terrain

	start       Position
	goal        Position
	checkpoints []Position

	dynamicObstacles map[Position]bool
	turn             int
	rand             *ObstacleRand

	spawnRate             float64
	terrainChangesPerTurn int
	obstacleSpawnsPerTurn int
}

// InBounds reports whether the position lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// IsOpen reports whether the cell is a carved, non-wall cell. Lava cells
// remain open; they are impassable through cost, not through carving.
func (g *Grid) IsOpen(p Position) bool {
	return g.InBounds(p) && g.open[p.Y][p.X]
}

// TerrainAt returns the terrain of a cell, Wall for walls or out-of-bounds
// positions, and Grass for open cells with no explicit assignment.
func (g *Grid) TerrainAt(p Position) Terrain {
	if !g.IsOpen(p) {
		return Wall
	}
	if t, ok := g.terrain[p]; ok {
		return t
	}
	return Grass
}

// Cost returns the movement cost of entering a cell, +Inf if impassable.
func (g *Grid) Cost(p Position) float64 {
	if !g.IsOpen(p) {
		return math.Inf(1)
	}
	return CostForTerrain(g.TerrainAt(p))
}

// IsPassable reports whether a cell can be entered at finite cost.
func (g *Grid) IsPassable(p Position) bool {
	return !math.IsInf(g.Cost(p), 1)
}

// Neighbors returns the in-bounds, non-wall 4-neighborhood of a position
// in fixed N, E, S, W order. Impassable-but-open cells (lava) are included;
// their infinite cost keeps any search from finalizing through them.
func (g *Grid) Neighbors(p Position) []Position {
	neighbors := make([]Position, 0, 4)
	for _, d := range directions {
		n := Position{X: p.X + d.dx, Y: p.Y + d.dy}
		if g.IsOpen(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Start returns the generated start position.
func (g *Grid) Start() Position {
	return g.start
}

// GoalPos returns the generated goal position.
func (g *Grid) GoalPos() Position {
	return g.goal
}

// Checkpoints returns the checkpoint positions, if any.
func (g *Grid) Checkpoints() []Position {
	return g.checkpoints
}

// Turn returns the current turn counter.
func (g *Grid) Turn() int {
	return g.turn
}

// ObstacleSeed returns the seed of the obstacle generator.
func (g *Grid) ObstacleSeed() int64 {
	return g.rand.Seed()
}

// ObstacleDraws returns the tracked draw count of the obstacle generator.
func (g *Grid) ObstacleDraws() uint64 {
	return g.rand.Draws()
}

// DynamicObstacles returns the positions of obstacles spawned since
// generation, in deterministic (y, x) order.
func (g *Grid) DynamicObstacles() []Position {
	return sortedPositions(g.dynamicObstacles)
}

// TerrainSnapshot returns a copy of the current terrain assignment. The
// copy is safe to hold across turns.
func (g *Grid) TerrainSnapshot() map[Position]Terrain {
	snapshot := make(map[Position]Terrain, len(g.terrain))
	for p, t := range g.terrain {
		snapshot[p] = t
	}
	return snapshot
}

// SetTerrain overwrites the terrain of an open cell. It is exposed for
// scenario setup and tests; live mutation goes through AdvanceTurn.
func (g *Grid) SetTerrain(p Position, t Terrain) {
	if g.IsOpen(p) {
		g.terrain[p] = t
	}
}

// Clone returns a deep copy of the grid sharing no mutable state with the
// original. The clone gets no generator; forecast replay attaches its own.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		Width:                 g.Width,
		Height:                g.Height,
		open:                  make([][]bool, g.Height),
		terrain:               g.TerrainSnapshot(),
		start:                 g.start,
		goal:                  g.goal,
		checkpoints:           append([]Position(nil), g.checkpoints...),
		dynamicObstacles:      make(map[Position]bool, len(g.dynamicObstacles)),
		turn:                  g.turn,
		spawnRate:             g.spawnRate,
		terrainChangesPerTurn: g.terrainChangesPerTurn,
		obstacleSpawnsPerTurn: g.obstacleSpawnsPerTurn,
	}
	for y, row := range g.open {
		clone.open[y] = append([]bool(nil), row...)
	}
	for p := range g.dynamicObstacles {
		clone.dynamicObstacles[p] = true
	}
	return clone
}

// sortedPositions flattens a position set into deterministic (y, x) order.
func sortedPositions(set map[Position]bool) []Position {
	out := make([]Position, 0, len(set))
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
