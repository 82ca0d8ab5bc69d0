package rosterfile

import "errors"

// Sentinel error kinds for roster files.
var (
	ErrLoadRoster    = errors.New("load roster failed")
	ErrInvalidRoster = errors.New("invalid roster")
)
