package pathfind

import (
	"fmt"

	"github.com/mazequest/pathfinder-server/game/forecast"
	"github.com/mazequest/pathfinder-server/game/grid"
)

// predictive runs the base algorithm against current terrain, then walks
// the candidate path turn-by-turn against the obstacle forecast to price
// what the terrain will actually cost when each step is taken. It reports
// the risk; it does not replan around predicted obstacles.
//
// Predictive results never touch the cache: the forecast-adjusted cost
// changes every turn, so a stale hit would silently serve outdated
// terrain.
func (pf *Pathfinder) predictive(g *grid.Grid, q SearchQuery) (*SearchResult, error) {
	base := q.BaseAlgorithm
	switch base {
	case AlgorithmBFS, AlgorithmDijkstra, AlgorithmAStar, AlgorithmBidirectional:
	case "":
		base = AlgorithmAStar
	default:
		return newSearchResult(), fmt.Errorf("%w: predictive base %q", ErrUnknownAlgorithm, base)
	}

	goal, _ := q.Goal.Single()
	result := pf.runSingleGoal(g, base, q.Start, goal, q.Mask)
	if !result.Found {
		return result, nil
	}

	horizon := q.TurnsAhead
	if horizon <= 0 || horizon > len(result.Path) {
		horizon = len(result.Path)
	}

	snapshots, err := forecast.Future(g, horizon)
	if err != nil {
		return result, err
	}

	// Step i of the path is walked on forecast turn i; beyond the
	// horizon the last snapshot's terrain stands in for current cost.
	var adjusted float64
	for i, pos := range result.Path {
		if len(snapshots) == 0 {
			adjusted += finiteCost(g.Cost(pos))
			continue
		}
		idx := i
		if idx >= len(snapshots) {
			idx = len(snapshots) - 1
		}
		adjusted += finiteCost(snapshots[idx].CostAt(pos))
	}

	scored := *result
	scored.ForecastCost = adjusted
	return &scored, nil
}

// finiteCost treats a predicted-impassable step as a large finite risk
// rather than poisoning the sum with +Inf; the path already exists on
// current terrain and the caller decides whether to re-query.
func finiteCost(c float64) float64 {
	const impassableRisk = 1000
	if c > impassableRisk {
		return impassableRisk
	}
	return c
}
