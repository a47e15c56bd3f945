package pathfind

import "github.com/mazequest/pathfinder-server/game/grid"

// DefaultHistoryCapacity bounds the recent-position list consulted by the
// fog-of-war revisit penalty.
const DefaultHistoryCapacity = 10

// RecentHistory is a fixed-capacity ring buffer of recently visited
// positions. Once full, each push evicts the oldest entry. The calling
// agent owns it and carries it across queries.
type RecentHistory struct {
	buf  []grid.Position
	next int
	size int
}

// NewRecentHistory creates a ring buffer with the given capacity;
// non-positive capacities fall back to the default.
func NewRecentHistory(capacity int) *RecentHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &RecentHistory{buf: make([]grid.Position, capacity)}
}

// Push records a visited position, evicting the oldest when full.
func (h *RecentHistory) Push(p grid.Position) {
	h.buf[h.next] = p
	h.next = (h.next + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Contains reports whether the position is in the recent window.
func (h *RecentHistory) Contains(p grid.Position) bool {
	if h == nil {
		return false
	}
	for i := 0; i < h.size; i++ {
		if h.buf[i] == p {
			return true
		}
	}
	return false
}

// Len returns the number of recorded positions, at most the capacity.
func (h *RecentHistory) Len() int {
	if h == nil {
		return 0
	}
	return h.size
}

// Snapshot returns the recorded positions oldest first, for persistence.
func (h *RecentHistory) Snapshot() []grid.Position {
	if h == nil || h.size == 0 {
		return nil
	}
	out := make([]grid.Position, 0, h.size)
	start := 0
	if h.size == len(h.buf) {
		start = h.next
	}
	for i := 0; i < h.size; i++ {
		out = append(out, h.buf[(start+i)%len(h.buf)])
	}
	return out
}
