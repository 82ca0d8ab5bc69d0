package reveal

import (
	"github.com/okian/lineup/pkg/logger"
)

// Default session configuration constants.
const (
	defaultMailboxSize = 256
)

type config struct {
	timing      Timing
	scheduler   Scheduler
	observer    func(Snapshot)
	logger      logger.Logger
	mailboxSize int
}

func newConfig(opts []Option) *config {
	c := &config{
		timing:      DefaultTiming(),
		mailboxSize: defaultMailboxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("reveal")
	}
	return c
}

// Option applies a configuration option to a Machine or Session.
type Option func(*config)

// WithTiming sets the ceremony timing.
func WithTiming(t Timing) Option {
	return func(c *config) {
		c.timing = t
	}
}

// WithScheduler sets the timer source. For a Session the scheduler only
// decides when a callback is due; the callback still runs on the session
// goroutine.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithObserver registers a callback receiving a Snapshot after every
// transition. It runs on the goroutine driving the machine.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *config) {
		c.observer = fn
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

// WithMailboxSize bounds the number of queued session events.
func WithMailboxSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.mailboxSize = n
		}
	}
}
