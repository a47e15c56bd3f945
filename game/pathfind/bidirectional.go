package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// bidirectional runs two simultaneous informed searches, forward from the
// start and backward from the goal, each using a heuristic toward the
// opposite anchor. It stops once the best finalized cost in each
// direction together can no longer beat the best complete path found at a
// meeting node. Two open sets make it more expensive on short paths but
// cut total expansions on long ones.
//
// Backward relaxation charges the cost of the cell being exited, which is
// the cell a forward traversal would enter; that keeps the stitched cost
// g_forward(meet) + g_backward(meet) exactly equal to the forward path
// cost, so the reported cost matches Dijkstra and A*.
func (pf *Pathfinder) bidirectional(g *grid.Grid, start, goal grid.Position, mask VisibilityMask) *SearchResult {
	result := newSearchResult()

	goalDiscovered := mask.Contains(goal)

	openF := newFrontier()
	startH := pf.forwardEstimate(start, goal, goalDiscovered)
	openF.push(start, pf.heuristicScale*startH, startH)
	cameFromF := make(map[grid.Position]grid.Position)
	gF := map[grid.Position]float64{start: 0}
	exploredF := make(map[grid.Position]bool)

	openB := newFrontier()
	cameFromB := make(map[grid.Position]grid.Position)
	gB := make(map[grid.Position]float64)
	exploredB := make(map[grid.Position]bool)
	if goalDiscovered {
		// An undiscovered goal cannot seed a backward frontier; the
		// search then degenerates to forward-only and reports not found,
		// matching the blind-search contract.
		goalH := pf.heuristic(goal, start)
		openB.push(goal, pf.heuristicScale*goalH, goalH)
		gB[goal] = 0
	}

	var meet *grid.Position
	bestMeetCost := math.Inf(1)
	var topF, topB float64

	limit := maxNodes(g)
	for !openF.empty() && !openB.empty() && result.NodesExplored < limit {
		// Forward step.
		if current, _, ok := openF.pop(); ok && !exploredF[current] {
			exploredF[current] = true
			result.Explored[current] = true
			result.NodesExplored++
			if gF[current] > topF {
				topF = gF[current]
			}

			if exploredB[current] {
				if total := gF[current] + gB[current]; total < bestMeetCost {
					c := current
					meet = &c
					bestMeetCost = total
				}
			}

			for _, next := range maskedNeighbors(g, current, mask, start) {
				edgeCost := g.Cost(next)
				if math.IsInf(edgeCost, 1) {
					continue
				}
				newG := gF[current] + edgeCost
				if best, seen := gF[next]; !seen || newG < best {
					gF[next] = newG
					cameFromF[next] = current
					h := pf.forwardEstimate(next, goal, goalDiscovered)
					openF.push(next, newG+pf.heuristicScale*h, h)
					result.Frontier[next] = true
				}
			}
		}

		// Backward step.
		if current, _, ok := openB.pop(); ok && !exploredB[current] {
			exploredB[current] = true
			result.Explored[current] = true
			result.NodesExplored++
			if gB[current] > topB {
				topB = gB[current]
			}

			if exploredF[current] {
				if total := gF[current] + gB[current]; total < bestMeetCost {
					c := current
					meet = &c
					bestMeetCost = total
				}
			}

			exitCost := g.Cost(current)
			for _, next := range maskedNeighbors(g, current, mask, start) {
				if math.IsInf(g.Cost(next), 1) {
					continue
				}
				newG := gB[current] + exitCost
				if best, seen := gB[next]; !seen || newG < best {
					gB[next] = newG
					cameFromB[next] = current
					h := pf.heuristic(next, start)
					openB.push(next, newG+pf.heuristicScale*h, h)
					result.Frontier[next] = true
				}
			}
		}

		// The smallest remaining edge weight is zero (checkpoint and
		// reward cells are free), so the bound is the meet cost itself.
		if meet != nil && topF+topB >= bestMeetCost {
			break
		}
	}

	if meet == nil {
		return result
	}

	for p := range result.Explored {
		delete(result.Frontier, p)
	}

	forward := reconstructPath(cameFromF, start, *meet)
	backward := []grid.Position{}
	node := *meet
	for {
		prev, ok := cameFromB[node]
		if !ok {
			break
		}
		backward = append(backward, prev)
		node = prev
	}

	result.complete(append(forward, backward...), bestMeetCost)
	return result
}

// forwardEstimate is the forward heuristic: zero when the goal has not
// been discovered under the mask.
func (pf *Pathfinder) forwardEstimate(p, goal grid.Position, goalDiscovered bool) float64 {
	if !goalDiscovered {
		return 0
	}
	return pf.heuristic(p, goal)
}
