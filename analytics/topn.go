package analytics

import (
	"cmp"
	"container/heap"
	"sort"
)

// Entry pairs a ranked key with its ordering value. Seq is the first-seen
// position in the source and breaks ties so rankings stay deterministic.
type Entry[V cmp.Ordered] struct {
	Key   string
	Value V
	Seq   int
}

// less orders a before b under the ranking: larger values first when largest
// is set, then earlier Seq on equal values.
func less[V cmp.Ordered](a, b Entry[V], largest bool) bool {
	if a.Value != b.Value {
		if largest {
			return a.Value > b.Value
		}
		return a.Value < b.Value
	}
	return a.Seq < b.Seq
}

type entryHeap[V cmp.Ordered] struct {
	items   []Entry[V]
	largest bool
}

func (h entryHeap[V]) Len() int      { return len(h.items) }
func (h entryHeap[V]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h entryHeap[V]) Less(i, j int) bool {
	// The heap root is the weakest retained entry, so the heap comparison is
	// the inverse of the ranking order.
	return less(h.items[j], h.items[i], h.largest)
}
func (h *entryHeap[V]) Push(x interface{}) { h.items = append(h.items, x.(Entry[V])) }
func (h *entryHeap[V]) Pop() interface{} {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// TopN retains the n best entries seen so far.
type TopN[V cmp.Ordered] struct {
	h        *entryHeap[V]
	capacity int
}

func NewTopN[V cmp.Ordered](capacity int, largest bool) *TopN[V] {
	if capacity <= 0 {
		capacity = 1
	}
	h := &entryHeap[V]{items: make([]Entry[V], 0, capacity), largest: largest}
	heap.Init(h)
	return &TopN[V]{h: h, capacity: capacity}
}

func (t *TopN[V]) Insert(e Entry[V]) {
	if t.h.Len() < t.capacity {
		heap.Push(t.h, e)
		return
	}
	root := t.h.items[0]
	if less(e, root, t.h.largest) {
		t.h.items[0] = e
		heap.Fix(t.h, 0)
	}
}

// Values returns the retained entries in ranking order.
func (t *TopN[V]) Values() []Entry[V] {
	out := make([]Entry[V], len(t.h.items))
	copy(out, t.h.items)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j], t.h.largest) })
	return out
}
