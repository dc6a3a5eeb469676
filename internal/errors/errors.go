// Package errors provides the shared error kinds the service is built on.
// Domain packages wrap these sentinels with context so use cases stay
// expressive while handlers can still map failures to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (duplicate name, stale version).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated client doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrLocked indicates the client is temporarily locked out after repeated
	// failed authentication attempts.
	ErrLocked = errors.New("locked")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to an error while preserving the error chain.
// Returns nil when err is nil so call sites can wrap unconditionally.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
