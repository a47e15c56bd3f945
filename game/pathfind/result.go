package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// NodeScore holds the per-node A* bookkeeping recorded while a node was
// on the frontier: actual cost from start, heuristic estimate, and their
// sum.
type NodeScore struct {
	G float64 `json:"g"`
	H float64 `json:"h"`
	F float64 `json:"f"`
}

// SearchResult is the outcome of one pathfinding query. Callers must
// treat it as read-only; cached results are shared across hits.
type SearchResult struct {
	// Path is the position sequence from start to goal inclusive, empty
	// when no path was found.
	Path []grid.Position `json:"path"`

	// Cost is the total cost of the path, +Inf when no path was found.
	Cost float64 `json:"cost"`

	// Found reports whether a complete path was found. Found=false always
	// comes with an empty path and infinite cost.
	Found bool `json:"found"`

	// Explored holds every position whose cost was finalized; Frontier
	// holds the positions still enqueued when the result was snapshotted.
	Explored map[grid.Position]bool `json:"-"`
	Frontier map[grid.Position]bool `json:"-"`

	// NodeScores maps frontier-touched positions to their g/h/f values.
	NodeScores map[grid.Position]NodeScore `json:"-"`

	// NodesExplored counts finalized nodes; lower means a more directed
	// search for the same query.
	NodesExplored int `json:"nodes_explored"`

	// ForecastCost is the forecast-adjusted total cost set only by
	// predictive queries; zero otherwise.
	ForecastCost float64 `json:"forecast_cost,omitempty"`
}

// newSearchResult creates an empty not-found result.
func newSearchResult() *SearchResult {
	return &SearchResult{
		Cost:       math.Inf(1),
		Explored:   make(map[grid.Position]bool),
		Frontier:   make(map[grid.Position]bool),
		NodeScores: make(map[grid.Position]NodeScore),
	}
}

// complete fills in the found-path fields.
func (r *SearchResult) complete(path []grid.Position, cost float64) {
	r.Path = path
	r.Cost = cost
	r.Found = true
}

// reconstructPath walks the came-from links backwards from goal to start
// and returns the forward path.
func reconstructPath(cameFrom map[grid.Position]grid.Position, start, goal grid.Position) []grid.Position {
	path := []grid.Position{}
	node := goal
	for {
		path = append(path, node)
		prev, ok := cameFrom[node]
		if !ok {
			break
		}
		node = prev
	}
	if path[len(path)-1] != start {
		path = append(path, start)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
