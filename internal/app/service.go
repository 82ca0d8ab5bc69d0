// Package service wires the layout registry, team views and reveal sessions
// together for a process.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/lineup/internal/adapters/rosterfile"
	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/layout"
	"github.com/okian/lineup/internal/domain/reveal"
	"github.com/okian/lineup/internal/domain/view"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

const (
	defaultMailboxSize = 256
	// reapTimeout bounds the shutdown of a finished reveal session.
	reapTimeout = 5 * time.Second
)

// Service owns the template registry and the reveal sessions opened
// through it.
type Service struct {
	mu sync.RWMutex

	registry    *layout.Registry
	catalogPath string
	timing      reveal.Timing
	scheduler   reveal.Scheduler
	swapOnDrop  bool
	mailboxSize int

	ctx      context.Context
	cancel   context.CancelFunc
	sessions map[string]*reveal.Session
	wg       sync.WaitGroup
	started  bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		timing:      reveal.DefaultTiming(),
		mailboxSize: defaultMailboxSize,
		sessions:    make(map[string]*reveal.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the template catalog unless a registry was supplied.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if err := s.timing.Validate(); err != nil {
		return err
	}

	if s.registry == nil {
		reg, err := s.loadRegistry()
		if err != nil {
			metrics.RecordErrorByComponent("service", "catalog")
			return fmt.Errorf("start service: %w", err)
		}
		s.registry = reg
	}
	metrics.UpdateCatalogTemplates(s.registry.Len())

	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.started = true
	s.logger.Info(ctx, "lineup service started",
		logger.Int("templates", s.registry.Len()),
		logger.String("catalog", s.catalogSource()),
		logger.Bool("swapOnDrop", s.swapOnDrop),
	)
	return nil
}

func (s *Service) loadRegistry() (*layout.Registry, error) {
	if s.catalogPath == "" {
		return layout.NewDefaultRegistry()
	}
	c, err := layout.LoadCatalogFile(s.catalogPath)
	if err != nil {
		return nil, err
	}
	return layout.NewRegistry(c.Templates)
}

func (s *Service) catalogSource() string {
	if s.catalogPath == "" {
		return "bundled"
	}
	return s.catalogPath
}

// Stop shuts down every open reveal session.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	open := make([]*reveal.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "stopping lineup service", logger.Int("sessions", len(open)))

	var errs []error
	for _, sess := range open {
		if err := sess.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", sess.ID(), err))
		}
	}
	s.cancel()
	s.wg.Wait()

	s.logger.Info(ctx, "lineup service stopped")
	return errors.Join(errs...)
}

// Registry returns the template registry. It is nil before Start.
func (s *Service) Registry() *layout.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// OpenView creates a team view over a roster. Options override the
// service defaults.
func (s *Service) OpenView(ctx context.Context, r *rosterfile.Roster, opts ...view.Option) (*view.TeamView, error) {
	s.mu.RLock()
	started, reg, swap, l := s.started, s.registry, s.swapOnDrop, s.logger
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	all := append([]view.Option{
		view.WithSwapOnDrop(swap),
		view.WithLogger(l.Named("view")),
	}, opts...)
	v, err := view.New(ctx, reg, r.Members, r.Context(), all...)
	if err != nil {
		metrics.RecordErrorByComponent("service", "view")
		return nil, err
	}
	return v, nil
}

// OpenReveal builds a deck from the whole roster and runs a reveal session
// over it. The session is shut down when its ceremony ends or the service
// stops. Options override the service defaults.
func (s *Service) OpenReveal(ctx context.Context, r *rosterfile.Roster, opts ...reveal.Option) (*reveal.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil, ErrNotStarted
	}

	deck, err := reveal.BuildDeck(card.ProjectAll(r.Members, r.Context()))
	if err != nil {
		metrics.RecordErrorByComponent("service", "deck")
		return nil, err
	}

	all := []reveal.Option{
		reveal.WithTiming(s.timing),
		reveal.WithMailboxSize(s.mailboxSize),
		reveal.WithLogger(s.logger.Named("reveal")),
	}
	if s.scheduler != nil {
		all = append(all, reveal.WithScheduler(s.scheduler))
	}
	sess, err := reveal.NewSession(s.ctx, deck, append(all, opts...)...)
	if err != nil {
		metrics.RecordErrorByComponent("service", "session")
		return nil, err
	}
	s.sessions[sess.ID()] = sess

	life := s.ctx
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		sess.Run(life)
	}()
	go func() {
		defer s.wg.Done()
		s.reap(life, sess)
	}()

	s.logger.Info(ctx, "reveal session opened",
		logger.String("session_id", sess.ID()),
		logger.String("team", r.Team),
		logger.Int("cards", deck.Len()),
	)
	return sess, nil
}

// reap shuts a session down once its ceremony has ended.
func (s *Service) reap(life context.Context, sess *reveal.Session) {
	select {
	case <-sess.Done():
	case <-life.Done():
	}
	ctx, cancel := context.WithTimeout(context.Background(), reapTimeout)
	defer cancel()
	if err := sess.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "reveal session shutdown failed",
			logger.String("session_id", sess.ID()), logger.Error(err))
	}

	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
}

// Sessions returns the number of reveal sessions still open.
func (s *Service) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"sessions":    len(s.sessions),
		"swapOnDrop":  s.swapOnDrop,
		"mailboxSize": s.mailboxSize,
	}
	if s.registry != nil {
		stats["templates"] = s.registry.Len()
	}
	return stats
}
