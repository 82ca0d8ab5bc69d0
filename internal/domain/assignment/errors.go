package assignment

import "errors"

// Sentinel kinds for assignment errors.
var (
	ErrNotInjective = errors.New("assignment is not injective")
)
