package pathfind

import "github.com/mazequest/pathfinder-server/game/grid"

// bfs is breadth-first search: priority is insertion order and edge cost
// is ignored, so the returned path minimizes hop count, not cost. On
// weighted terrain the reported cost can exceed the optimum; the two only
// coincide when every traversable cell shares one cost.
func (pf *Pathfinder) bfs(g *grid.Grid, start, goal grid.Position, mask VisibilityMask) *SearchResult {
	result := newSearchResult()

	queue := []grid.Position{start}
	cameFrom := make(map[grid.Position]grid.Position)
	seen := map[grid.Position]bool{start: true}
	result.Frontier[start] = true

	limit := maxNodes(g)
	for len(queue) > 0 && len(result.Explored) < limit {
		current := queue[0]
		queue = queue[1:]
		result.Explored[current] = true
		delete(result.Frontier, current)
		result.NodesExplored++

		if current == goal {
			path := reconstructPath(cameFrom, start, goal)
			var cost float64
			for _, p := range path[1:] {
				cost += g.Cost(p)
			}
			result.complete(path, cost)
			return result
		}

		for _, next := range maskedNeighbors(g, current, mask, start) {
			if seen[next] || !g.IsPassable(next) {
				continue
			}
			seen[next] = true
			cameFrom[next] = current
			queue = append(queue, next)
			result.Frontier[next] = true
		}
	}

	return result
}
