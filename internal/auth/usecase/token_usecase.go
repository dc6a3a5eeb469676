// Package usecase implements business logic orchestration for client authentication.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	authService "github.com/passvault/passvault/internal/auth/service"
	"github.com/passvault/passvault/internal/config"
	apperrors "github.com/passvault/passvault/internal/errors"
)

// tokenUseCase implements TokenUseCase for issuing and validating bearer tokens.
type tokenUseCase struct {
	config        *config.Config
	clientRepo    ClientRepository
	tokenRepo     TokenRepository
	secretService authService.SecretService
	tokenService  authService.TokenService
}

// Issue authenticates a client and generates a new bearer token.
//
// This method:
// 1. Validates the client exists, is not locked, and is active
// 2. Verifies the client secret matches
// 3. Generates a new token with expiration from config
// 4. Stores the token hash in the database
// 5. Returns the plain token to the caller (only shown once)
//
// Failed secret checks count toward a lockout: after LockoutMaxAttempts
// consecutive failures the client is locked for LockoutDuration and the
// counter restarts. A successful issuance clears any accumulated failures.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both non-existent clients and wrong
//     secrets to prevent client enumeration
//   - Returns ErrClientLocked while a lockout is in effect, and on the
//     attempt that triggers one
//   - Returns ErrClientInactive if the client exists but is not active
//   - The plain token is only returned once and should be transmitted securely
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	// Get the client by ID
	client, err := t.clientRepo.Get(ctx, issueTokenInput.ClientID)
	if err != nil {
		// If client not found, return generic error to prevent enumeration
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now().UTC()

	// Reject while a lockout is in effect
	if client.IsLocked(now) {
		return nil, authDomain.ErrClientLocked
	}

	// Check if client is active
	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	// Verify the client secret
	if !t.secretService.CompareSecret(issueTokenInput.ClientSecret, client.Secret) {
		return nil, t.recordFailedAttempt(ctx, client, now)
	}

	// Clear any stale failure state from earlier attempts
	if client.FailedAttempts > 0 || client.LockedUntil != nil {
		if err := t.clientRepo.UpdateLockState(ctx, client.ID, 0, nil); err != nil {
			return nil, err
		}
	}

	// Generate a new token
	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	// Create the token entity with expiration from config
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		ClientID:  client.ID,
		ExpiresAt: now.Add(t.config.AuthTokenExpiration),
		CreatedAt: now,
	}

	// Persist the token
	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// Return the plain token
	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// recordFailedAttempt bumps the failure counter after a wrong secret and
// triggers a lockout when the configured maximum is reached. The counter
// restarts at zero when a lock is set, so a fresh run of failures is needed
// to lock again after it expires.
func (t *tokenUseCase) recordFailedAttempt(
	ctx context.Context,
	client *authDomain.Client,
	now time.Time,
) error {
	failedAttempts := client.FailedAttempts + 1

	var lockedUntil *time.Time
	if failedAttempts >= t.config.LockoutMaxAttempts {
		until := now.Add(t.config.LockoutDuration)
		lockedUntil = &until
		failedAttempts = 0
	}

	if err := t.clientRepo.UpdateLockState(ctx, client.ID, failedAttempts, lockedUntil); err != nil {
		return err
	}

	if lockedUntil != nil {
		return authDomain.ErrClientLocked
	}
	return authDomain.ErrInvalidCredentials
}

// Authenticate validates a bearer token and returns the associated client.
//
// This method:
// 1. Retrieves the token by its hash
// 2. Validates the token is not expired
// 3. Retrieves the associated client
// 4. Validates the client is active
//
// Security Notes:
//   - Returns ErrInvalidCredentials for token not found or expired to prevent
//     enumeration and information leakage
//   - Returns ErrInvalidCredentials if the associated client is not found
//     (shouldn't happen due to foreign key constraints, but handled for safety)
//   - Returns ErrClientInactive if the client exists but is not active
//   - A lockout does not invalidate previously issued tokens; it only gates
//     new issuance, where secret guessing happens
//   - All time comparisons use UTC to prevent timezone issues
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	// Get the token by hash
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		// If token not found, return generic error to prevent enumeration
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Check if token is expired
	if token.ExpiresAt.Before(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// Get the associated client
	client, err := t.clientRepo.Get(ctx, token.ClientID)
	if err != nil {
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Check if client is active
	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	// Return the authenticated client
	return client, nil
}

// CleanupExpired deletes tokens that expired more than the specified number of
// days ago. Returns the number of deleted tokens. Use dryRun=true to preview
// the count without deletion.
func (t *tokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.New("days must be non-negative")
	}

	// Calculate the cutoff timestamp (days ago from now in UTC)
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		// In dry run mode, count expired tokens without deleting
		return t.tokenRepo.CountExpiredBefore(ctx, cutoff)
	}

	// Delete expired tokens
	return t.tokenRepo.DeleteExpiredBefore(ctx, cutoff)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:        config,
		clientRepo:    clientRepo,
		tokenRepo:     tokenRepo,
		secretService: secretService,
		tokenService:  tokenService,
	}
}
