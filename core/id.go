package core

import (
	"container/heap"
	"math"

	"github.com/tartavull/alacritty/schema"
)

// idAllocator hands out tab ids as (index, generation) pairs. The lowest
// freed index is always reused first, with its generation bumped so stale
// ids from before the reuse never match a live tab.
type idAllocator struct {
	next uint32
	free indexHeap
	gens map[uint32]uint32
}

func newIDAllocator() *idAllocator {
	return &idAllocator{gens: make(map[uint32]uint32)}
}

// Acquire returns the next tab id: the lowest free index if any, else a
// fresh one. The generation is 0 for a never-used index.
func (a *idAllocator) Acquire() schema.TabID {
	if a.free.Len() > 0 {
		index := heap.Pop(&a.free).(uint32)
		return schema.TabID{Index: index, Generation: a.gens[index]}
	}
	index := a.next
	a.next++
	return schema.TabID{Index: index, Generation: 0}
}

// Release returns an id's index to the free pool. The next acquisition of
// the index carries a higher generation; at the maximum the generation
// saturates rather than wrapping back to reusable values.
func (a *idAllocator) Release(id schema.TabID) {
	gen := id.Generation
	if gen < math.MaxUint32 {
		gen++
	}
	a.gens[id.Index] = gen
	heap.Push(&a.free, id.Index)
}

type indexHeap []uint32

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(uint32)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
