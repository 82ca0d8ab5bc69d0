package view

import "errors"

// Sentinel kinds for view construction errors. Runtime conflicts (unknown
// members or slots) are reported as rejected actions, not errors.
var (
	ErrNoRegistry      = errors.New("team view needs a layout registry")
	ErrDuplicateMember = errors.New("duplicate member id")
	ErrMissingMemberID = errors.New("member id is required")
)
