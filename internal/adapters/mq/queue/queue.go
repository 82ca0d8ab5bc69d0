// Package queue provides a bounded in-memory mailbox.
//
// The mailbox merges events from several producers (user actions, timer
// callbacks) into one ordered stream for a single consumer.
package queue

import (
	"context"
	"sync"

	"github.com/okian/lineup/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 1024
	defaultName     = "mailbox"
)

// Queue provides enqueue and channel-based dequeue semantics.
type Queue[T any] interface {
	// Enqueue adds an item without blocking.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, item T) bool

	// EnqueueWait adds an item, blocking while the queue is full.
	// Returns false if ctx ends first or the queue is closed.
	EnqueueWait(ctx context.Context, item T) bool

	// Dequeue returns a channel that receives items in FIFO order.
	// The channel is closed when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan T

	// Len returns the current number of queued items.
	Len(ctx context.Context) int

	// Close stops accepting items. Queued items remain readable.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue[T any] struct {
	items    chan T
	capacity int
	name     string

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue[T any](opts ...Option) *InMemoryQueue[T] {
	s := settings{capacity: defaultCapacity, name: defaultName}
	for _, opt := range opts {
		opt(&s)
	}

	return &InMemoryQueue[T]{
		items:    make(chan T, s.capacity),
		capacity: s.capacity,
		name:     s.name,
	}
}

// Enqueue adds an item to the queue without blocking.
func (q *InMemoryQueue[T]) Enqueue(ctx context.Context, item T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordMailboxRejected(q.name, "closed")
		return false
	}

	select {
	case q.items <- item:
		metrics.RecordMailboxEnqueue(q.name)
		return true
	case <-ctx.Done():
		metrics.RecordMailboxRejected(q.name, "context_cancelled")
		return false
	default:
		metrics.RecordMailboxRejected(q.name, "full")
		return false
	}
}

// EnqueueWait adds an item, waiting for room.
func (q *InMemoryQueue[T]) EnqueueWait(ctx context.Context, item T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordMailboxRejected(q.name, "closed")
		return false
	}

	select {
	case q.items <- item:
		metrics.RecordMailboxEnqueue(q.name)
		return true
	case <-ctx.Done():
		metrics.RecordMailboxRejected(q.name, "context_cancelled")
		return false
	}
}

// Dequeue returns a channel that will receive items as they become available.
func (q *InMemoryQueue[T]) Dequeue(ctx context.Context) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for item := range q.items {
			select {
			case out <- item:
				metrics.RecordMailboxDequeue(q.name)
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued items.
func (q *InMemoryQueue[T]) Len(ctx context.Context) int {
	return len(q.items)
}

// Capacity returns the configured bound.
func (q *InMemoryQueue[T]) Capacity() int {
	return q.capacity
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	// Close the channel to signal consumers to stop once drained
	close(q.items)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue[T]) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
