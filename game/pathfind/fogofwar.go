package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

const (
	// DefaultRevisitPenalty is the additive cost for re-entering a
	// recently visited cell, discouraging oscillation when knowledge is
	// incomplete.
	DefaultRevisitPenalty = 5.0

	// explorationBonus is the multiplicative cost reduction applied to
	// cells the agent has never seen, nudging the search into unknown
	// territory.
	explorationBonus = 0.8
)

// fogOfWar is the partial-observability search. Expansion is restricted
// to the visibility mask, extended by the caller-owned memory map of
// previously seen terrain. When the goal is neither visible nor
// remembered, the search substitutes the nearest frontier cell (a known
// cell with at least one unknown neighbor) as a synthetic objective so
// exploration stays directed instead of exhaustive.
func (pf *Pathfinder) fogOfWar(g *grid.Grid, start, goal grid.Position, mask VisibilityMask, memory MemoryMap, recent *RecentHistory, revisitPenalty float64) *SearchResult {
	result := newSearchResult()

	if revisitPenalty == 0 {
		revisitPenalty = DefaultRevisitPenalty
	}

	goalKnown := mask == nil || mask[goal] || memoryHas(memory, goal)
	target := goal
	if !goalKnown {
		if frontierCell, ok := pf.nearestFrontier(g, start, mask, memory); ok {
			target = frontierCell
			goalKnown = true
		}
	}

	known := func(p grid.Position) bool {
		if mask == nil {
			return true
		}
		if p == start {
			return true
		}
		return mask[p] || memoryHas(memory, p)
	}

	estimate := func(p grid.Position) float64 {
		if goalKnown {
			return pf.heuristic(p, target)
		}
		return pf.explorationScore(g, p, mask, memory)
	}

	open := newFrontier()
	startH := estimate(start)
	open.push(start, startH, startH)
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

		if current == target {
			result.complete(reconstructPath(cameFrom, start, target), gScore[target])
			return result
		}

		for _, next := range g.Neighbors(current) {
			if !known(next) {
				continue
			}

			baseCost := pf.rememberedCost(g, next, mask, memory)
			if math.IsInf(baseCost, 1) {
				continue
			}
			if recent.Contains(next) {
				baseCost += revisitPenalty
			}

			tentativeG := gScore[current] + baseCost
			if best, seen := gScore[next]; !seen || tentativeG < best {
				cameFrom[next] = current
				gScore[next] = tentativeG

				h := estimate(next)
				f := tentativeG + h
				open.push(next, f, h)
				result.Frontier[next] = true
				result.NodeScores[next] = NodeScore{G: tentativeG, H: h, F: f}
			}
		}
	}

	return result
}

// rememberedCost prices a cell from memory when the agent has seen it
// before, and from the live grid otherwise. A never-seen cell gets the
// exploration discount so unknown territory looks slightly attractive.
func (pf *Pathfinder) rememberedCost(g *grid.Grid, p grid.Position, mask VisibilityMask, memory MemoryMap) float64 {
	if terrain, ok := memory[p]; ok {
		return grid.CostForTerrain(terrain)
	}
	base := g.Cost(p)
	if math.IsInf(base, 1) {
		return base
	}
	if mask != nil && !mask[p] {
		discounted := base * explorationBonus
		if discounted < grid.MinStepCost {
			discounted = grid.MinStepCost
		}
		return discounted
	}
	return base
}

// nearestFrontier finds the known cell closest to start that borders
// unknown territory. Returns false when the whole known area is interior.
func (pf *Pathfinder) nearestFrontier(g *grid.Grid, start grid.Position, mask VisibilityMask, memory MemoryMap) (grid.Position, bool) {
	if mask == nil {
		return grid.Position{}, false
	}

	bestDist := math.MaxInt
	var best grid.Position
	found := false
	for _, cell := range sortPositions(mask) {
		if !mask[cell] {
			continue
		}
		hasUnknown := false
		for _, n := range g.Neighbors(cell) {
			if !mask[n] && !memoryHas(memory, n) {
				hasUnknown = true
				break
			}
		}
		if !hasUnknown {
			continue
		}
		if d := grid.ManhattanDistance(start, cell); d < bestDist {
			bestDist = d
			best = cell
			found = true
		}
	}
	return best, found
}

// explorationScore rewards cells adjacent to unknown territory: more
// unknown neighbors means a lower score, steering the search along the
// boundary of the known area.
func (pf *Pathfinder) explorationScore(g *grid.Grid, p grid.Position, mask VisibilityMask, memory MemoryMap) float64 {
	if mask == nil {
		return 0
	}
	unknown := 0
	for _, n := range g.Neighbors(p) {
		if !mask[n] && !memoryHas(memory, n) {
			unknown++
		}
	}
	score := 10 - float64(unknown)*2
	if score < 0 {
		return 0
	}
	return score
}

func memoryHas(memory MemoryMap, p grid.Position) bool {
	if memory == nil {
		return false
	}
	_, ok := memory[p]
	return ok
}
