package pathfind

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/mazequest/pathfinder-server/game/grid"
)

var (
	// ErrInvalidQuery marks a query rejected at the boundary: start or
	// goal out of bounds or impassable, or a goal shape the requested
	// algorithm cannot take. A no-path outcome is NOT an error.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnknownAlgorithm marks an algorithm identifier outside the
	// closed set this engine dispatches on.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Algorithm identifies one of the engine's search variants. The set is
// closed; Search dispatches on it exactly once per query.
type Algorithm string

const (
	AlgorithmBFS           Algorithm = "bfs"
	AlgorithmDijkstra      Algorithm = "dijkstra"
	AlgorithmAStar         Algorithm = "astar"
	AlgorithmBidirectional Algorithm = "bidirectional_astar"
	AlgorithmFogOfWar      Algorithm = "fog_of_war"
	AlgorithmPredictive    Algorithm = "predictive"
	AlgorithmMultiGoal     Algorithm = "multi_goal"
)

// SingleGoalAlgorithms lists the variants callers can cycle through for
// plain point-to-point queries.
var SingleGoalAlgorithms = []Algorithm{
	AlgorithmBFS,
	AlgorithmDijkstra,
	AlgorithmAStar,
	AlgorithmBidirectional,
}

// VisibilityMask is the set of positions the calling agent has
// discovered. A nil mask means full visibility. The engine never mutates
// a mask.
type VisibilityMask map[grid.Position]bool

// Contains reports whether the mask covers a position. A nil mask covers
// everything.
func (m VisibilityMask) Contains(p grid.Position) bool {
	return m == nil || m[p]
}

// Digest returns a position-order-independent fingerprint of the mask,
// used as the visibility component of cache keys. Nil and empty masks
// hash differently from each other.
func (m VisibilityMask) Digest() uint64 {
	if m == nil {
		return 0
	}
	set := make(map[grid.Position]bool, len(m))
	for p, visible := range m {
		if visible {
			set[p] = true
		}
	}
	h := fnv.New64a()
	var buf [8]byte
	write := func(v int) {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		h.Write(buf[:4])
	}
	write(len(set))
	for _, p := range sortPositions(set) {
		write(p.X)
		write(p.Y)
	}
	return h.Sum64()
}

// MemoryMap records the last-known terrain of cells an agent has seen
// before. It is owned and persisted by the calling agent; the engine only
// reads it for the duration of a fog-of-war query.
type MemoryMap map[grid.Position]grid.Terrain

// Goal is the tagged goal shape of a query: exactly one of a single
// position or a goal set. Keeping the shapes distinct at the type level
// is what lets the boundary reject a goal collection handed to a
// single-goal algorithm instead of silently exploring the whole grid.
type Goal struct {
	single *grid.Position
	set    []grid.Position
}

// SingleGoal wraps one goal position.
func SingleGoal(p grid.Position) Goal {
	return Goal{single: &p}
}

// GoalSet wraps an unordered collection of goal positions.
func GoalSet(positions ...grid.Position) Goal {
	return Goal{set: append([]grid.Position(nil), positions...)}
}

// Single returns the goal position when the shape is a single goal.
func (g Goal) Single() (grid.Position, bool) {
	if g.single == nil {
		return grid.Position{}, false
	}
	return *g.single, true
}

// Set returns the goal positions when the shape is a goal set.
func (g Goal) Set() ([]grid.Position, bool) {
	if g.set == nil {
		return nil, false
	}
	return g.set, true
}

// encode renders the goal in a stable textual form for cache keys.
func (g Goal) encode() string {
	if g.single != nil {
		return fmt.Sprintf("s:%d,%d", g.single.X, g.single.Y)
	}
	parts := make([]string, 0, len(g.set))
	for _, p := range g.set {
		parts = append(parts, fmt.Sprintf("%d,%d", p.X, p.Y))
	}
	return "m:" + strings.Join(parts, ";")
}

// SearchQuery describes one pathfinding request. It is immutable for the
// duration of the call and is the basis of the result cache key.
type SearchQuery struct {
	Start     grid.Position  `json:"start"`
	Goal      Goal           `json:"-"`
	Algorithm Algorithm      `json:"algorithm"`
	Mask      VisibilityMask `json:"-"`

	// Destination is the final position of a multi-goal query, reached
	// after every goal in the set. Ignored by other algorithms.
	Destination *grid.Position `json:"destination,omitempty"`

	// BaseAlgorithm selects the underlying search for a predictive
	// query; empty defaults to A*. Ignored by other algorithms.
	BaseAlgorithm Algorithm `json:"base_algorithm,omitempty"`

	// TurnsAhead bounds the forecast horizon of a predictive query; zero
	// defaults to the candidate path length. Ignored by other algorithms.
	TurnsAhead int `json:"turns_ahead,omitempty"`

	// Memory and Recent are the caller-owned exploration state consumed
	// by fog-of-war queries. Both may be nil.
	Memory MemoryMap      `json:"-"`
	Recent *RecentHistory `json:"-"`

	// RevisitPenalty is the additive cost for re-entering a recently
	// visited cell in a fog-of-war query; zero defaults to 5.
	RevisitPenalty float64 `json:"revisit_penalty,omitempty"`
}

// sortPositions flattens a position set into deterministic (y, x) order.
func sortPositions(set map[grid.Position]bool) []grid.Position {
	out := make([]grid.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
