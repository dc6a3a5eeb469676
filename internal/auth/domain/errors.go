package domain

import (
	"github.com/passvault/passvault/internal/errors"
)

// Authentication errors.
var (
	// ErrClientNotFound indicates a client with the specified ID was not found.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrTokenNotFound indicates a token with the specified hash was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials indicates the presented client credentials or token
	// are wrong. Covers unknown clients, wrong secrets, and unknown or expired
	// tokens uniformly so callers cannot probe which part failed.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrClientInactive indicates the client exists but has been deactivated.
	ErrClientInactive = errors.Wrap(errors.ErrForbidden, "client is not active")

	// ErrClientLocked indicates the client is temporarily locked out after too
	// many failed authentication attempts.
	ErrClientLocked = errors.Wrap(errors.ErrLocked, "client is locked")

	// ErrClientNameRequired indicates a client was created without a name.
	ErrClientNameRequired = errors.Wrap(errors.ErrInvalidInput, "client name required")
)
