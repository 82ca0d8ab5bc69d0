package reveal

import "errors"

// Sentinel kinds for reveal errors.
var (
	ErrEmptyDeck      = errors.New("reveal deck is empty")
	ErrDuplicateOrder = errors.New("duplicate reveal order")
	ErrMissingOrder   = errors.New("missing reveal order")
	ErrInvalidTiming  = errors.New("invalid reveal timing")
	ErrNoScheduler    = errors.New("reveal machine needs a scheduler")
	ErrSessionClosed  = errors.New("reveal session closed")
)
