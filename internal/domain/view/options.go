package view

import (
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
)

type config struct {
	swapOnDrop bool
	filter     roster.Predicate
	templateID string
	logger     logger.Logger
}

// Option applies a configuration option to a TeamView.
type Option func(*config)

// WithSwapOnDrop moves a displaced occupant into the slot the dropped member
// left, instead of sending it to the bench.
func WithSwapOnDrop(enabled bool) Option {
	return func(c *config) {
		c.swapOnDrop = enabled
	}
}

// WithFilter sets the initial filter predicate.
func WithFilter(p roster.Predicate) Option {
	return func(c *config) {
		c.filter = p
	}
}

// WithTemplate selects a template instead of the sport default. Unknown or
// foreign ids fall back to the default.
func WithTemplate(id string) Option {
	return func(c *config) {
		c.templateID = id
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
