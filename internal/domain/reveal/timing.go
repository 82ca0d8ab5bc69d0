package reveal

import (
	"fmt"
	"time"
)

// Default ceremony timing.
const (
	DefaultCountdownSteps  = 3
	DefaultCountdownStep   = 800 * time.Millisecond
	DefaultFlipDelay       = 300 * time.Millisecond
	DefaultFlipDuration    = 600 * time.Millisecond
	DefaultAutoAdvance     = 3500 * time.Millisecond
	DefaultCompletionDelay = 500 * time.Millisecond
)

// Timing holds every delay of the ceremony.
type Timing struct {
	// CountdownSteps is the number of countdown ticks; 0 skips the countdown.
	CountdownSteps int
	CountdownStep  time.Duration
	// FlipDelay is the wait between a card becoming active and flipping.
	FlipDelay    time.Duration
	FlipDuration time.Duration
	// AutoAdvance moves past a revealed card; 0 disables it.
	AutoAdvance     time.Duration
	CompletionDelay time.Duration
}

// DefaultTiming returns the standard ceremony timing.
func DefaultTiming() Timing {
	return Timing{
		CountdownSteps:  DefaultCountdownSteps,
		CountdownStep:   DefaultCountdownStep,
		FlipDelay:       DefaultFlipDelay,
		FlipDuration:    DefaultFlipDuration,
		AutoAdvance:     DefaultAutoAdvance,
		CompletionDelay: DefaultCompletionDelay,
	}
}

// Validate rejects negative values.
func (t Timing) Validate() error {
	switch {
	case t.CountdownSteps < 0:
		return fmt.Errorf("%w: countdown steps %d", ErrInvalidTiming, t.CountdownSteps)
	case t.CountdownStep < 0, t.FlipDelay < 0, t.FlipDuration < 0, t.AutoAdvance < 0, t.CompletionDelay < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidTiming)
	}
	return nil
}
