// Package queue implements the scheduler's ready queue: a FIFO of
// runnable tasks, independent of what a "task" actually is.
package queue

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// ReadyQueue is a FIFO queue with its own mutex, for callers that reach
// it outside the scheduler's lock discipline. Every push and pop inside the
// scheduler core goes through the *Locked variants while already holding
// the scheduler mutex, so the queue's own mutex and the scheduler mutex
// are never both held at once.
type ReadyQueue struct {
	mu sync.Mutex
	q  *linkedlistqueue.Queue
}

// New returns an empty ready queue.
func New() *ReadyQueue {
	return &ReadyQueue{q: linkedlistqueue.New()}
}

// Push enqueues v, taking the queue's own lock.
func (r *ReadyQueue) Push(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.q.Enqueue(v)
}

// Pop dequeues the head of the queue, taking the queue's own lock.
func (r *ReadyQueue) Pop() (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Dequeue()
}

// PushLocked enqueues v without taking any lock. The caller must already
// hold a lock that serializes access to the queue (the scheduler mutex).
func (r *ReadyQueue) PushLocked(v any) {
	r.q.Enqueue(v)
}

// PopLocked dequeues the head without taking any lock. Same discipline as
// PushLocked.
func (r *ReadyQueue) PopLocked() (any, bool) {
	return r.q.Dequeue()
}

// Empty reports whether the queue has no elements, taking the queue's own lock.
func (r *ReadyQueue) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Empty()
}

// EmptyLocked is the lock-free counterpart of Empty.
func (r *ReadyQueue) EmptyLocked() bool {
	return r.q.Empty()
}

// Size returns the number of elements currently queued, taking the
// queue's own lock.
func (r *ReadyQueue) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Size()
}

// SizeLocked is the lock-free counterpart of Size.
func (r *ReadyQueue) SizeLocked() int {
	return r.q.Size()
}

// Destroy empties the queue. Whatever was still queued is the caller's
// responsibility, exactly as for the scheduler's own Destroy.
func (r *ReadyQueue) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.q.Clear()
}
