package pathfind

import (
	"container/heap"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// frontierItem is one enqueued position. seq is a monotonically
// increasing insertion counter: ties on priority break by lower h, then
// by insertion order, so runs are deterministic.
type frontierItem struct {
	pos grid.Position
	f   float64
	h   float64
	seq int
}

type frontierHeap []*frontierItem

func (q frontierHeap) Len() int { return len(q) }

func (q frontierHeap) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q frontierHeap) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontierHeap) Push(x any) { *q = append(*q, x.(*frontierItem)) }

func (q *frontierHeap) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// frontier is the priority queue shared by every priority-ordered search.
// Stale entries are tolerated: a position may sit in the heap several
// times and the pop loop skips already-finalized ones.
type frontier struct {
	heap frontierHeap
	seq  int
}

func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(&f.heap)
	return f
}

func (f *frontier) push(pos grid.Position, priority, h float64) {
	f.seq++
	heap.Push(&f.heap, &frontierItem{pos: pos, f: priority, h: h, seq: f.seq})
}

func (f *frontier) pop() (grid.Position, float64, bool) {
	if len(f.heap) == 0 {
		return grid.Position{}, 0, false
	}
	item := heap.Pop(&f.heap).(*frontierItem)
	return item.pos, item.f, true
}

func (f *frontier) empty() bool {
	return len(f.heap) == 0
}
