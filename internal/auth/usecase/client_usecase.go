package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	authService "github.com/passvault/passvault/internal/auth/service"
)

// clientUseCase implements ClientUseCase for operator-driven client management.
type clientUseCase struct {
	clientRepo    ClientRepository
	secretService authService.SecretService
}

// Create generates and persists a new Client with a random secret.
// Returns the client ID and plain text secret. The plain secret is only returned once
// and must be securely stored by the caller. The hashed version is stored in the database.
func (c *clientUseCase) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	if strings.TrimSpace(createClientInput.Name) == "" {
		return nil, authDomain.ErrClientNameRequired
	}

	// Generate a secure random secret
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Secret:    hashedSecret,
		Name:      createClientInput.Name,
		IsActive:  createClientInput.IsActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Unlock clears a client's failed attempt counter and lockout deadline so it
// can authenticate again before the lock expires on its own.
func (c *clientUseCase) Unlock(ctx context.Context, clientID uuid.UUID) error {
	if _, err := c.clientRepo.Get(ctx, clientID); err != nil {
		return err
	}

	return c.clientRepo.UpdateLockState(ctx, clientID, 0, nil)
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, secretService authService.SecretService) ClientUseCase {
	return &clientUseCase{
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}
