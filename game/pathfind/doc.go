// Package pathfind implements the maze pathfinding engine.
//
// The pathfind package provides:
//   - Four single-goal algorithms: breadth-first, Dijkstra, A*, and
//     bidirectional A*
//   - A fog-of-war variant with memory-assisted frontier exploration
//   - Multi-goal ordering search (checkpoint routing)
//   - A predictive wrapper that re-scores a path against forecast terrain
//   - A bounded LRU cache in front of repeatable queries
//
// Core Types:
//
// Pathfinder is the engine facade; Search dispatches one SearchQuery to
// the algorithm it names and returns a SearchResult. The engine borrows
// the Grid for the duration of the call and never retains it. Queries are
// validated at the boundary: a start or goal outside the grid or on an
// impassable cell, or a goal collection handed to a single-goal
// algorithm, is rejected with ErrInvalidQuery rather than searched.
//
// Usage:
//
//	pf := pathfind.NewPathfinder(pathfind.Manhattan, 1.0)
//	result, err := pf.Search(g, pathfind.SearchQuery{
//		Start:     g.Start(),
//		Goal:      pathfind.SingleGoal(g.GoalPos()),
//		Algorithm: pathfind.AlgorithmAStar,
//	})
//
// An unreachable goal is a normal outcome, not an error: the result comes
// back with Found=false, an empty path, and infinite cost.
//
// Optimality:
//
// Dijkstra, A*, and bidirectional A* report identical optimal costs under
// an admissible heuristic (scale <= 1). Breadth-first minimizes hop count,
// not cost, and is non-optimal on weighted terrain. A heuristic scale
// above 1 (the "hard" difficulty) deliberately breaks admissibility and
// must never be used where optimality is asserted.
package pathfind
