package verto

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned by credentialed operations invoked without an
// active session, before any network attempt is made.
var ErrAuthRequired = errors.New("you must be signed in")

// NetworkError represents a transport-level failure that prevented a response
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
