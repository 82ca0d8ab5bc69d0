package worker

import (
	"github.com/okian/lineup/pkg/logger"
)

// Option applies a configuration option to the Executor.
type Option func(*Executor)

// WithName sets the executor name used in logs and metrics.
func WithName(name string) Option {
	return func(e *Executor) {
		if name != "" {
			e.name = name
		}
	}
}

// WithLogger sets a custom logger for the executor.
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}
