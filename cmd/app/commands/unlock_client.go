package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/passvault/passvault/internal/auth/usecase"
)

// RunUnlockClient clears the failed-attempt counter and lockout deadline of a
// client so it can request tokens again before the lock expires on its own.
//
// Requirements: Database must be migrated and the client must exist.
func RunUnlockClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	clientIDStr string,
) error {
	logger.Info("unlocking client", slog.String("client_id", clientIDStr))

	// Parse client ID
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return fmt.Errorf("invalid client ID format: %w", err)
	}

	// Unlock the client
	if err := clientUseCase.Unlock(ctx, clientID); err != nil {
		return fmt.Errorf("failed to unlock client: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Client %s unlocked\n", clientID.String())

	logger.Info("client unlocked successfully", slog.String("client_id", clientID.String()))

	return nil
}
