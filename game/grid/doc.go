// Package grid provides the maze model consumed by the pathfinding engine.
//
// The grid package implements:
//   - Weighted grid cells with terrain-based movement costs
//   - Perfect maze generation via recursive backtracking
//   - 4-directional adjacency queries over open cells
//   - A draw-counting random generator for deterministic obstacle replay
//   - The per-turn dynamic terrain mutation applied between turns
//
// Core Types:
//
// Grid is the read-only capability borrowed by the pathfinding engine for
// the duration of a query: Cost, Neighbors, and IsOpen. ObstacleRand is an
// owned generator carrying (seed, draw count) so future terrain states can
// be replayed exactly.
//
// Usage:
//
//	g := grid.Generate(21, 21, 42)
//	cost := g.Cost(grid.Position{X: 3, Y: 5})
//	for _, n := range g.Neighbors(grid.Position{X: 3, Y: 5}) {
//		// expand n
//	}
//
// A Grid is immutable per generation except through AdvanceTurn, which is
// only ever driven by the owning session between turns.
package grid
