// Package queue provides an unbounded FIFO that any number of goroutines can
// push onto while a single consumer drains it without ever blocking.
package queue

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Push once the consumer has closed the queue.
var ErrClosed = errors.New("queue closed")

// Queue is an unbounded multi-producer, single-consumer FIFO. Items pushed
// by one goroutine are delivered in the order that goroutine pushed them;
// items from different goroutines interleave in lock-acquisition order.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends v to the tail of the queue.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, v)
	return nil
}

// TryPop removes and returns the head of the queue. It reports false when
// the queue is empty.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// Drain removes and returns everything currently queued, oldest first.
// It returns nil immediately when nothing is queued.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close drops the consumer end. Items already queued remain drainable;
// later pushes fail with ErrClosed.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
