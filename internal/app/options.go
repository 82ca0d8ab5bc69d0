package service

import (
	"github.com/okian/lineup/internal/config"
	"github.com/okian/lineup/internal/domain/layout"
	"github.com/okian/lineup/internal/domain/reveal"
	"github.com/okian/lineup/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRegistry uses r instead of loading a catalog on Start.
func WithRegistry(r *layout.Registry) Option {
	return func(s *Service) {
		s.registry = r
	}
}

// WithCatalogPath loads the layout catalog from a file instead of the
// bundled one.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithTiming sets the timing of reveal sessions.
func WithTiming(t reveal.Timing) Option {
	return func(s *Service) {
		s.timing = t
	}
}

// WithScheduler sets the timer source of reveal sessions.
func WithScheduler(sch reveal.Scheduler) Option {
	return func(s *Service) {
		s.scheduler = sch
	}
}

// WithSwapOnDrop makes team views swap occupants on drop.
func WithSwapOnDrop(enabled bool) Option {
	return func(s *Service) {
		s.swapOnDrop = enabled
	}
}

// WithMailboxSize bounds the queued events of each reveal session.
func WithMailboxSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.mailboxSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// FromConfig maps process configuration to service options.
func FromConfig(cfg *config.Config) []Option {
	step, flipDelay, flipDuration, autoAdvance, completion := cfg.Durations()
	return []Option{
		WithCatalogPath(cfg.CatalogPath),
		WithSwapOnDrop(cfg.SwapOnDrop),
		WithMailboxSize(cfg.MailboxSize),
		WithTiming(reveal.Timing{
			CountdownSteps:  cfg.CountdownSteps,
			CountdownStep:   step,
			FlipDelay:       flipDelay,
			FlipDuration:    flipDuration,
			AutoAdvance:     autoAdvance,
			CompletionDelay: completion,
		}),
	}
}
