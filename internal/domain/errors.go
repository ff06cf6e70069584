package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a place name could not be resolved to coordinates.
var ErrNotFound = errors.New("not found")

// ErrServiceUnavailable indicates a transport or HTTP failure of an
// external call, as opposed to a well-formed empty result.
var ErrServiceUnavailable = errors.New("service unavailable")

// CompositionError is the aggregate failure surfaced to the UI when a
// route composition cannot complete. It wraps the first fatal cause.
type CompositionError struct {
	Reason string
	Cause  error
}

func (e *CompositionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compose route: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("compose route: %s", e.Reason)
}

func (e *CompositionError) Unwrap() error { return e.Cause }
