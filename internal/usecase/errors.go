package usecase

import "errors"

// Error taxonomy surfaced verbatim to callers. Session conflicts are expected
// user-facing outcomes, not faults; the delivery layer maps each sentinel to
// an HTTP status.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyRunning  = errors.New("extraction session is already running")
	ErrNotRunning      = errors.New("no extraction session is running")
	ErrTransientIO     = errors.New("transient storage failure")
)
