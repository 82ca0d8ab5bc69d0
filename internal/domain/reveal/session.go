package reveal

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/lineup/internal/adapters/mq/queue"
	"github.com/okian/lineup/internal/adapters/mq/worker"
	"github.com/okian/lineup/pkg/logger"
)

// Session runs a Machine on a single goroutine. User actions and timer fires
// are merged through one mailbox, so the machine sees them in a total order
// and never runs concurrently with itself. All methods are safe for
// concurrent use.
type Session struct {
	id      string
	machine *Machine
	mailbox *queue.InMemoryQueue[worker.Task]
	exec    *worker.Executor
	logger  logger.Logger

	// ctx bounds timer deliveries; it is cancelled on Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	last     Snapshot
	started  bool
	stopped  bool
	done     chan struct{}
	doneOnce sync.Once
	shutOnce sync.Once
	shutErr  error
}

// NewSession creates a session over deck. Run must be called to process
// actions. WithScheduler, when given, only decides when timers are due; the
// callbacks still run on the session goroutine.
func NewSession(ctx context.Context, deck Deck, opts ...Option) (*Session, error) {
	cfg := newConfig(opts)
	if err := cfg.timing.Validate(); err != nil {
		return nil, err
	}
	if deck.Len() == 0 {
		return nil, ErrEmptyDeck
	}

	id := uuid.NewString()
	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:     id,
		logger: cfg.logger,
		ctx:    sctx,
		cancel: cancel,
		done:   make(chan struct{}),
		mailbox: queue.NewInMemoryQueue[worker.Task](
			queue.WithCapacity(cfg.mailboxSize),
			queue.WithName("reveal"),
		),
	}
	s.exec = worker.NewExecutor(s.mailbox,
		worker.WithName("reveal-session"),
		worker.WithLogger(cfg.logger.Named("executor")),
	)

	observer := cfg.observer
	cfg.observer = func(snap Snapshot) {
		s.mu.Lock()
		s.last = snap
		s.mu.Unlock()
		if observer != nil {
			observer(snap)
		}
		if snap.Phase == PhaseComplete || snap.Closed {
			s.doneOnce.Do(func() { close(s.done) })
		}
	}
	cfg.scheduler = postingScheduler{inner: cfg.scheduler, post: s.post}

	s.machine = newMachine(sctx, deck, cfg)
	s.last = s.machine.Snapshot()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Deck returns the cards in reveal order. The deck never changes.
func (s *Session) Deck() Deck { return s.machine.Deck() }

// Run processes the mailbox until the session is shut down or ctx ends.
// It blocks; call it on its own goroutine.
func (s *Session) Run(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Debug(ctx, "reveal session running",
		logger.String("session_id", s.id),
		logger.Int("cards", s.machine.Deck().Len()),
	)
	s.exec.Run(ctx)
}

// Start begins the ceremony. The bool reports whether the machine accepted
// the action.
func (s *Session) Start(ctx context.Context) (bool, error) {
	var ok bool
	err := s.call(ctx, func() { ok = s.machine.Start() })
	return ok, err
}

// Advance moves past the active card once it is revealed.
func (s *Session) Advance(ctx context.Context) (bool, error) {
	var ok bool
	err := s.call(ctx, func() { ok = s.machine.Advance() })
	return ok, err
}

// SkipAll jumps to the end of the ceremony.
func (s *Session) SkipAll(ctx context.Context) (bool, error) {
	var ok bool
	err := s.call(ctx, func() { ok = s.machine.SkipAll() })
	return ok, err
}

// Close tears the ceremony down without stopping the session goroutine.
func (s *Session) Close(ctx context.Context) (bool, error) {
	var ok bool
	err := s.call(ctx, func() { ok = s.machine.Close() })
	return ok, err
}

// Snapshot returns the state after the most recent transition.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Done is closed when the ceremony completes or is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Shutdown closes the machine, cancels its timers and stops the session
// goroutine. It is idempotent.
func (s *Session) Shutdown(ctx context.Context) error {
	s.shutOnce.Do(func() {
		s.mu.Lock()
		running := s.started
		s.stopped = true
		s.mu.Unlock()

		if running {
			if err := s.call(ctx, func() { s.machine.Close() }); err != nil && !errors.Is(err, ErrSessionClosed) {
				s.shutErr = err
			}
		} else {
			// Nothing can be driving the machine before Run.
			s.machine.Close()
		}

		s.cancel()
		_ = s.mailbox.Close()
		if running {
			select {
			case <-s.exec.Done():
			case <-ctx.Done():
				if s.shutErr == nil {
					s.shutErr = ctx.Err()
				}
			}
		}
		s.logger.Debug(ctx, "reveal session shut down", logger.String("session_id", s.id))
	})
	return s.shutErr
}

// call runs fn on the session goroutine and waits for it.
func (s *Session) call(ctx context.Context, fn func()) error {
	reply := make(chan struct{})
	if !s.mailbox.EnqueueWait(ctx, func() {
		defer close(reply)
		fn()
	}) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrSessionClosed
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.exec.Done():
		select {
		case <-reply:
			return nil
		default:
			return ErrSessionClosed
		}
	}
}

// post delivers a timer callback to the session goroutine.
func (s *Session) post(fn func()) bool {
	return s.mailbox.EnqueueWait(s.ctx, fn)
}
