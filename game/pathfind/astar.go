package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// aStar is informed search with priority f = g + scaled h. Ties on f
// break by lower h, then by insertion order. Under a visibility mask with
// an undiscovered goal the heuristic drops to zero, degrading gracefully
// to uniform-cost behavior: the search cannot be guided toward a goal it
// has not seen.
func (pf *Pathfinder) aStar(g *grid.Grid, start, goal grid.Position, mask VisibilityMask) *SearchResult {
	result := newSearchResult()

	goalDiscovered := mask.Contains(goal)
	estimate := func(p grid.Position) float64 {
		if !goalDiscovered {
			return 0
		}
		return pf.heuristic(p, goal)
	}

	open := newFrontier()
	startH := estimate(start)
	open.push(start, pf.heuristicScale*startH, startH)
	result.Frontier[start] = true

	cameFrom := make(map[grid.Position]grid.Position)
	gScore := map[grid.Position]float64{start: 0}

	limit := maxNodes(g)
	for !open.empty() && result.NodesExplored < limit {
		current, _, _ := open.pop()
		if result.Explored[current] {
			continue
		}
		result.Explored[current] = true
		delete(result.Frontier, current)
		result.NodesExplored++

		if current == goal {
			result.complete(reconstructPath(cameFrom, start, goal), gScore[goal])
			return result
		}

		for _, next := range maskedNeighbors(g, current, mask, start) {
			edgeCost := g.Cost(next)
			if math.IsInf(edgeCost, 1) {
				continue
			}
			tentativeG := gScore[current] + edgeCost
			if best, seen := gScore[next]; !seen || tentativeG < best {
				cameFrom[next] = current
				gScore[next] = tentativeG

				h := estimate(next)
				f := tentativeG + pf.heuristicScale*h
				open.push(next, f, h)
				result.Frontier[next] = true
				result.NodeScores[next] = NodeScore{G: tentativeG, H: h, F: f}
			}
		}
	}

	return result
}
