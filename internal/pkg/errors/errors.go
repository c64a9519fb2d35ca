package errors

import "errors"

var (
	// ErrNotFound is the sentinel for entities or users that do not resolve.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is the sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is the sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is the sentinel for duplicate writes (double join, badge races).
	ErrConflict = errors.New("conflict")
	// ErrEntityFinalized is returned when a completed/failed entity is toggled.
	ErrEntityFinalized = errors.New("entity already finalized")
	// ErrTransientStore wraps store I/O failures that are safe to retry whole.
	ErrTransientStore = errors.New("transient store failure")
)
