package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// dijkstra is uniform-cost search: priority is the accumulated cost g.
// It terminates on popping the goal or on frontier exhaustion.
func (pf *Pathfinder) dijkstra(g *grid.Grid, start, goal grid.Position, mask VisibilityMask) *SearchResult {
	result := newSearchResult()

	open := newFrontier()
	open.push(start, 0, 0)
	result.Frontier[start] = true

	cameFrom := make(map[grid.Position]grid.Position)
	costSoFar := map[grid.Position]float64{start: 0}

	limit := maxNodes(g)
	for !open.empty() && result.NodesExplored < limit {
		current, currentCost, _ := open.pop()
		if result.Explored[current] {
			continue
		}
		result.Explored[current] = true
		delete(result.Frontier, current)
		result.NodesExplored++

		if current == goal {
			result.complete(reconstructPath(cameFrom, start, goal), costSoFar[goal])
			return result
		}

		for _, next := range maskedNeighbors(g, current, mask, start) {
			edgeCost := g.Cost(next)
			if math.IsInf(edgeCost, 1) {
				continue
			}
			newCost := currentCost + edgeCost
			if best, seen := costSoFar[next]; !seen || newCost < best {
				costSoFar[next] = newCost
				cameFrom[next] = current
				open.push(next, newCost, 0)
				result.Frontier[next] = true
				result.NodeScores[next] = NodeScore{G: newCost, F: newCost}
			}
		}
	}

	return result
}
