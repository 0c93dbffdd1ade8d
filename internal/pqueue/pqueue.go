// Package pqueue implements a binary min-heap of (key, value) pairs, keyed
// by a float64 cost, with FIFO tie-breaking so traces stay reproducible.
package pqueue

import "container/heap"

// item is a single queued element; seq breaks ties between equal keys in
// insertion order.
type item struct {
	key   float64
	value any
	seq   uint64
}

type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(*item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Queue is a min-heap of (key, value) pairs keyed by key, ties broken by
// insertion order.
type Queue struct {
	h    itemHeap
	next uint64
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Len returns the number of queued elements.
func (q *Queue) Len() int { return q.h.Len() }

// Push inserts value with the given key.
func (q *Queue) Push(key float64, value any) {
	heap.Push(&q.h, &item{key: key, value: value, seq: q.next})
	q.next++
}

// Pop removes and returns the lowest-key value. ok is false on an empty
// queue.
func (q *Queue) Pop() (value any, key float64, ok bool) {
	if q.h.Len() == 0 {
		return nil, 0, false
	}
	it := heap.Pop(&q.h).(*item)
	return it.value, it.key, true
}

// Peek returns the lowest-key value without removing it. ok is false on an
// empty queue.
func (q *Queue) Peek() (value any, key float64, ok bool) {
	if q.h.Len() == 0 {
		return nil, 0, false
	}
	it := q.h[0]
	return it.value, it.key, true
}
