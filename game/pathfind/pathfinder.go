package pathfind

import (
	"fmt"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// Pathfinder is the engine facade: heuristic configuration plus the
// result cache. It holds no reference to any grid; the grid is borrowed
// per query and released when the call returns.
type Pathfinder struct {
	heuristicType  HeuristicType
	heuristicScale float64
	cache          *resultCache
}

// NewPathfinder creates an engine with the given heuristic type and
// difficulty scale and a default-sized result cache. A scale of zero is
// treated as 1.
func NewPathfinder(heuristicType HeuristicType, heuristicScale float64) *Pathfinder {
	if heuristicScale == 0 {
		heuristicScale = MediumHeuristicScale
	}
	return &Pathfinder{
		heuristicType:  heuristicType,
		heuristicScale: heuristicScale,
		cache:          newResultCache(DefaultCacheSize),
	}
}

// NewPathfinderWithCacheSize creates an engine with an explicit cache
// capacity.
func NewPathfinderWithCacheSize(heuristicType HeuristicType, heuristicScale float64, cacheSize int) *Pathfinder {
	pf := NewPathfinder(heuristicType, heuristicScale)
	pf.cache = newResultCache(cacheSize)
	return pf
}

// HeuristicType returns the configured heuristic.
func (pf *Pathfinder) HeuristicType() HeuristicType {
	return pf.heuristicType
}

// HeuristicScale returns the configured difficulty scale.
func (pf *Pathfinder) HeuristicScale() float64 {
	return pf.heuristicScale
}

// ClearCache drops every cached result. Call it whenever the grid a
// session queries against has mutated.
func (pf *Pathfinder) ClearCache() {
	pf.cache.clear()
}

// CacheLen returns the number of cached results.
func (pf *Pathfinder) CacheLen() int {
	return pf.cache.len()
}

// Search runs one query against the borrowed grid. Queries are validated
// first: a rejected query returns an empty not-found result alongside an
// ErrInvalidQuery-wrapped error. An exhausted frontier is not an error;
// the result simply reports Found=false.
func (pf *Pathfinder) Search(g *grid.Grid, q SearchQuery) (*SearchResult, error) {
	if err := pf.validate(g, q); err != nil {
		return newSearchResult(), err
	}

	switch q.Algorithm {
	case AlgorithmBFS, AlgorithmDijkstra, AlgorithmAStar, AlgorithmBidirectional:
		goal, _ := q.Goal.Single()
		key := cacheKey{start: q.Start, goal: q.Goal.encode(), algorithm: q.Algorithm, masks: q.Mask.Digest()}
		if cached, ok := pf.cache.get(key); ok {
			return cached, nil
		}
		result := pf.runSingleGoal(g, q.Algorithm, q.Start, goal, q.Mask)
		pf.cache.put(key, result)
		return result, nil

	case AlgorithmFogOfWar:
		goal, _ := q.Goal.Single()
		// Uncached: the memory map and recent history vary per call in
		// ways the cache key cannot see.
		return pf.fogOfWar(g, q.Start, goal, q.Mask, q.Memory, q.Recent, q.RevisitPenalty), nil

	case AlgorithmPredictive:
		return pf.predictive(g, q)

	case AlgorithmMultiGoal:
		goals, _ := q.Goal.Set()
		destination := g.GoalPos()
		if q.Destination != nil {
			destination = *q.Destination
		}
		return pf.multiGoal(g, q.Start, goals, destination, q.Mask), nil

	default:
		return newSearchResult(), fmt.Errorf("%w: %q", ErrUnknownAlgorithm, q.Algorithm)
	}
}

// runSingleGoal dispatches one of the four point-to-point variants.
func (pf *Pathfinder) runSingleGoal(g *grid.Grid, algorithm Algorithm, start, goal grid.Position, mask VisibilityMask) *SearchResult {
	switch algorithm {
	case AlgorithmBFS:
		return pf.bfs(g, start, goal, mask)
	case AlgorithmDijkstra:
		return pf.dijkstra(g, start, goal, mask)
	case AlgorithmBidirectional:
		return pf.bidirectional(g, start, goal, mask)
	default:
		return pf.aStar(g, start, goal, mask)
	}
}

// validate enforces the query boundary contract.
func (pf *Pathfinder) validate(g *grid.Grid, q SearchQuery) error {
	if err := pf.validateEndpoint(g, q.Start, "start"); err != nil {
		return err
	}

	switch q.Algorithm {
	case AlgorithmBFS, AlgorithmDijkstra, AlgorithmAStar, AlgorithmBidirectional, AlgorithmFogOfWar, AlgorithmPredictive:
		goal, ok := q.Goal.Single()
		if !ok {
			if set, isSet := q.Goal.Set(); isSet {
				return fmt.Errorf("%w: algorithm %q takes a single goal, got a set of %d", ErrInvalidQuery, q.Algorithm, len(set))
			}
			return fmt.Errorf("%w: missing goal", ErrInvalidQuery)
		}
		return pf.validateEndpoint(g, goal, "goal")

	case AlgorithmMultiGoal:
		goals, ok := q.Goal.Set()
		if !ok {
			return fmt.Errorf("%w: algorithm %q takes a goal set", ErrInvalidQuery, q.Algorithm)
		}
		if len(goals) == 0 {
			return fmt.Errorf("%w: empty goal set", ErrInvalidQuery)
		}
		for _, goal := range goals {
			if err := pf.validateEndpoint(g, goal, "goal"); err != nil {
				return err
			}
		}
		if q.Destination != nil {
			return pf.validateEndpoint(g, *q.Destination, "destination")
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, q.Algorithm)
	}
}

// validateEndpoint rejects positions outside the grid or on impassable
// cells.
func (pf *Pathfinder) validateEndpoint(g *grid.Grid, p grid.Position, role string) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s (%d,%d) outside %dx%d grid", ErrInvalidQuery, role, p.X, p.Y, g.Width, g.Height)
	}
	if !g.IsPassable(p) {
		return fmt.Errorf("%w: %s (%d,%d) is impassable %s", ErrInvalidQuery, role, p.X, p.Y, g.TerrainAt(p))
	}
	return nil
}

// maxNodes derives the per-call expansion bound from the grid area. It
// guarantees termination even under an inconsistent cost function.
func maxNodes(g *grid.Grid) int {
	return g.Width * g.Height * 4
}

// accessible applies the visibility mask: the start is always reachable,
// everything else (goal included) must be discovered.
func accessible(mask VisibilityMask, p, start grid.Position) bool {
	if mask == nil {
		return true
	}
	if p == start {
		return true
	}
	return mask[p]
}

// maskedNeighbors filters grid adjacency through the visibility mask.
func maskedNeighbors(g *grid.Grid, p grid.Position, mask VisibilityMask, start grid.Position) []grid.Position {
	neighbors := g.Neighbors(p)
	if mask == nil {
		return neighbors
	}
	filtered := neighbors[:0]
	for _, n := range neighbors {
		if accessible(mask, n, start) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
