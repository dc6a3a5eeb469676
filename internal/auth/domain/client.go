// Package domain defines the client and token models for API authentication.
//
// Clients are the service's API principals. They authenticate with a
// generated secret and receive short-lived bearer tokens. Client credentials
// are unrelated to vault master passwords, which belong to the vault context
// and are never stored.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents an API client that can authenticate against the service.
type Client struct {
	ID             uuid.UUID  // Unique identifier (UUIDv7)
	Secret         string     //nolint:gosec // hashed client secret (not plaintext)
	Name           string     // Human-readable client name
	IsActive       bool       // Whether the client can authenticate
	FailedAttempts int        // Consecutive failed authentication attempts
	LockedUntil    *time.Time // Time until which the client is locked (nil if not locked)
	CreatedAt      time.Time
}

// IsLocked reports whether the client is currently locked out.
// A client is locked when LockedUntil is set and still in the future.
func (c *Client) IsLocked(now time.Time) bool {
	return c.LockedUntil != nil && c.LockedUntil.After(now)
}

// CreateClientInput contains the parameters for creating a new client.
// The client secret is always generated server-side and cannot be chosen.
type CreateClientInput struct {
	Name     string // Human-readable name for identifying the client
	IsActive bool   // Whether the client can authenticate immediately after creation
}

// CreateClientOutput contains the result of creating a new client.
// SECURITY: The PlainSecret is only returned once and must be securely
// transmitted to the client. It is never retrievable again.
type CreateClientOutput struct {
	ID          uuid.UUID // Unique identifier for the created client (UUIDv7)
	PlainSecret string    // Plain text secret for authentication (transmit securely, never log)
}
