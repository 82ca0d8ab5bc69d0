package rosterfile

import "github.com/okian/lineup/pkg/logger"

// Option applies a configuration option to a Provider.
type Option func(*Provider)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDefaultSport sets the sport used when the file does not name one.
func WithDefaultSport(sport string) Option {
	return func(p *Provider) {
		p.defaultSport = sport
	}
}
