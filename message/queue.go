// Package message provides a double-buffered queue: a batch written during one
// tick stays readable for that tick and the next, then is dropped.
// Every Reader keeps its own cursor, so each reader sees each message once
// no matter how many other readers consume the same batch.
package message

import "sync"

type Queue[T any] struct {
	mu sync.RWMutex

	previous      []T
	previousStart uint64 // sequence number of previous[0]
	current       []T
	currentStart  uint64
	count         uint64 // sequence number of the next message
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		previous: make([]T, 0, 32),
		current:  make([]T, 0, 32),
	}
}

// WriteBatch appends messages to the current batch, keeping their order
func (q *Queue[T]) WriteBatch(msgs []T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.current = append(q.current, msgs...)
	q.count += uint64(len(msgs))
}

// Update starts a new batch. The batch written before the previous Update is
// dropped; the last one stays readable.
func (q *Queue[T]) Update() {
	q.mu.Lock()
	defer q.mu.Unlock()

	clear(q.previous)
	q.previous, q.current = q.current, q.previous[:0]
	q.previousStart = q.currentStart
	q.currentStart = q.count
}

// Reader consumes a Queue. A Reader is owned by one consumer and is not
// safe for concurrent use; different Readers may read the same Queue concurrently.
type Reader[T any] struct {
	cursor uint64
}

// NewReader returns a reader positioned at the oldest readable message
func NewReader[T any]() *Reader[T] {
	return &Reader[T]{}
}

// Read returns, in write order, every message this reader has not seen yet
func (r *Reader[T]) Read(q *Queue[T]) []T {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if r.cursor < q.previousStart {
		// messages older than two batches are gone
		r.cursor = q.previousStart
	}

	result := make([]T, 0, q.count-r.cursor)
	if r.cursor < q.currentStart {
		result = append(result, q.previous[r.cursor-q.previousStart:]...)
		r.cursor = q.currentStart
	}
	result = append(result, q.current[r.cursor-q.currentStart:]...)
	r.cursor = q.count

	return result
}
