// Package worker runs queued tasks one at a time on a single goroutine.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Task is a unit of work executed by an Executor.
type Task func()

// Queue defines how the executor receives tasks.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Task
}

// Worker processes tasks until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, Shutdown is called,
	// or the queue is closed and drained.
	Run(ctx context.Context)

	// Shutdown stops the worker and waits for the loop to exit.
	Shutdown(ctx context.Context) error
}

// Executor implements Worker. Tasks never run concurrently with each other,
// which lets them share state without locks.
type Executor struct {
	queue Queue
	name  string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewExecutor creates a serial executor reading from queue.
func NewExecutor(queue Queue, opts ...Option) *Executor {
	e := &Executor{
		queue:    queue,
		name:     "executor",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named(e.name)
	}
	return e
}

// Run starts the executor loop.
func (e *Executor) Run(ctx context.Context) {
	defer close(e.done)

	tasks := e.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.shutdown:
			return
		case task, ok := <-tasks:
			if !ok {
				return
			}
			e.execute(ctx, task)
		}
	}
}

// Done is closed once Run has returned.
func (e *Executor) Done() <-chan struct{} {
	return e.done
}

// Shutdown signals the loop to stop and waits for it.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.shutdownOnce.Do(func() { close(e.shutdown) })

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		e.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// execute runs a single task, isolating panics so one bad task does not
// take the loop down.
func (e *Executor) execute(ctx context.Context, task Task) {
	if task == nil {
		return
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordTaskPanic(e.name)
			e.logger.Error(ctx, "task panicked", logger.Any("panic", r))
		}
		metrics.RecordTaskLatency(e.name, time.Since(start).Seconds())
	}()
	task()
}
