// Package bridge is the seam between the callback-driven host runtime and
// the fixed-tick simulation. The host may call the submit side at any moment,
// including concurrently with a tick; the engine drains each queue exactly
// once per tick. The queues are the only structures in the simulation that
// cross that boundary, so they are the only place a lock exists.
package bridge

import "sync"

// Queue is a multi-producer, single-drainer FIFO buffer.
//
// Enqueue may be called from any goroutine and never blocks beyond the
// append itself. Drain is called once per tick from the tick context: it
// swaps the buffer out under the lock and feeds items to the sink in
// insertion order, so a slow sink never stalls producers.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// Enqueue appends an item.
func (q *Queue[T]) Enqueue(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Drain removes every queued item and feeds them to sink in FIFO order.
// After Drain returns the queue is empty; no item is delivered twice.
func (q *Queue[T]) Drain(sink func(T)) {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()

	for _, item := range items {
		sink(item)
	}
}

// Len reports how many items are waiting.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
