// Package errs defines the structured failure kinds surfaced by the
// transaction core: bad drafts, remote store faults, and missing identity.
package errs

import (
	"errors"
	"fmt"
)

// ErrAuthenticationRequired is returned when an operation that needs an owner
// identity is attempted without one.
var ErrAuthenticationRequired = errors.New("authentication required")

// ValidationError reports a malformed draft. It is always produced before any
// remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a failed remote store call, carrying the
// underlying cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
