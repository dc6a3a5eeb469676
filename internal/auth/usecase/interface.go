// Package usecase defines business logic interfaces for client authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
)

// ClientRepository defines persistence operations for API clients.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	// Create stores a new client in the repository.
	Create(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)

	// UpdateLockState persists the failed attempt counter and lockout deadline
	// for a client. A nil lockedUntil clears the lock.
	UpdateLockState(ctx context.Context, clientID uuid.UUID, failedAttempts int, lockedUntil *time.Time) error
}

// TokenRepository defines persistence operations for issued bearer tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash retrieves a token by its SHA-256 hash.
	// Returns ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// CountExpiredBefore counts tokens whose expiration predates cutoff.
	CountExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteExpiredBefore removes tokens whose expiration predates cutoff and
	// returns how many were deleted.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ClientUseCase defines management operations for API clients. These are
// operator actions driven by the CLI, not exposed over HTTP.
type ClientUseCase interface {
	// Create generates a new client with a server-generated secret.
	//
	// Returns the client ID and plain text secret. The plain secret is only
	// returned once and must be securely recorded by the operator; the stored
	// form is an Argon2id hash.
	Create(
		ctx context.Context,
		createClientInput *authDomain.CreateClientInput,
	) (*authDomain.CreateClientOutput, error)

	// Unlock clears the lockout state for a client, resetting the failed
	// attempt counter and lockout deadline.
	// Returns ErrClientNotFound if the client doesn't exist.
	Unlock(ctx context.Context, clientID uuid.UUID) error
}

// TokenUseCase defines token issuance and validation for API clients.
type TokenUseCase interface {
	// Issue authenticates a client by ID and secret and returns a new bearer
	// token. Failed attempts count toward a lockout; see the implementation
	// for the exact rules.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Authenticate validates a presented token hash and returns the owning
	// client. Returns ErrInvalidCredentials for unknown or expired tokens.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)

	// CleanupExpired removes tokens that expired more than days ago. With
	// dryRun set it only reports how many would be removed.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
