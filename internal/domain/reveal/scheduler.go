package reveal

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already ran
	// or was already stopped.
	Stop() bool
}

// Scheduler runs fn once after d. Machines never block; every wait in the
// ceremony is a scheduled callback.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// RealScheduler runs callbacks on the wall clock. Callbacks run on their own
// goroutine, so a bare Machine must not be driven by it.
type RealScheduler struct{}

// After implements Scheduler.
func (RealScheduler) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// postingScheduler fires timers on the wall clock (or an inner scheduler)
// and hands the callback to post, which serialises it with user actions.
type postingScheduler struct {
	inner Scheduler
	post  func(func()) bool
}

func (p postingScheduler) After(d time.Duration, fn func()) Timer {
	deliver := func() { p.post(fn) }
	if p.inner != nil {
		return p.inner.After(d, deliver)
	}
	return RealScheduler{}.After(d, deliver)
}
