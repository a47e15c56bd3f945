package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// ExhaustiveGoalLimit is the goal count below which every visiting order
// is evaluated. At or above it, the search falls back to the
// nearest-unvisited-goal greedy order, which is approximate: it is not
// guaranteed to find the cheapest order, only a good one in O(n^2) legs
// instead of O(n!).
const ExhaustiveGoalLimit = 6

// multiGoal finds the cheapest order in which to visit every goal before
// reaching the destination. Each leg is an A* query; a leg with no path
// poisons its entire ordering, and only if every ordering is poisoned
// does the overall result come back not found.
func (pf *Pathfinder) multiGoal(g *grid.Grid, start grid.Position, goals []grid.Position, destination grid.Position, mask VisibilityMask) *SearchResult {
	result := newSearchResult()

	orders := [][]grid.Position{pf.greedyOrder(start, goals)}
	if len(goals) < ExhaustiveGoalLimit {
		orders = permutations(goals)
	}

	bestCost := math.Inf(1)
	var bestPath []grid.Position

	for _, order := range orders {
		waypoints := make([]grid.Position, 0, len(order)+2)
		waypoints = append(waypoints, start)
		waypoints = append(waypoints, order...)
		waypoints = append(waypoints, destination)

		var totalCost float64
		fullPath := []grid.Position{start}
		valid := true

		for i := 0; i < len(waypoints)-1; i++ {
			leg := pf.aStar(g, waypoints[i], waypoints[i+1], mask)
			mergeExploration(result, leg)
			if !leg.Found {
				valid = false
				break
			}
			fullPath = append(fullPath, leg.Path[1:]...)
			totalCost += leg.Cost
		}

		if valid && totalCost < bestCost {
			bestCost = totalCost
			bestPath = fullPath
		}
	}

	if bestPath != nil {
		result.complete(bestPath, bestCost)
	}
	return result
}

// greedyOrder visits the nearest unvisited goal first, by heuristic
// distance from wherever the previous goal left off.
func (pf *Pathfinder) greedyOrder(start grid.Position, goals []grid.Position) []grid.Position {
	remaining := append([]grid.Position(nil), goals...)
	order := make([]grid.Position, 0, len(goals))
	current := start

	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := pf.heuristic(current, remaining[0])
		for i := 1; i < len(remaining); i++ {
			if d := pf.heuristic(current, remaining[i]); d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		current = remaining[bestIdx]
		order = append(order, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return order
}

// permutations enumerates every ordering of the goals.
func permutations(goals []grid.Position) [][]grid.Position {
	if len(goals) <= 1 {
		return [][]grid.Position{append([]grid.Position(nil), goals...)}
	}
	var out [][]grid.Position
	for i := range goals {
		rest := make([]grid.Position, 0, len(goals)-1)
		rest = append(rest, goals[:i]...)
		rest = append(rest, goals[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]grid.Position{goals[i]}, tail...))
		}
	}
	return out
}

// mergeExploration folds a leg's exploration stats into the aggregate
// result for visualization.
func mergeExploration(into, leg *SearchResult) {
	for p := range leg.Explored {
		into.Explored[p] = true
	}
	for p := range leg.Frontier {
		into.Frontier[p] = true
	}
	into.NodesExplored += leg.NodesExplored
}
