package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	authMocks "github.com/passvault/passvault/internal/auth/usecase/mocks"
)

func TestRunUnlockClient(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	clientID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		mockUseCase := &authMocks.MockClientUseCase{}
		mockUseCase.On("Unlock", ctx, clientID).Return(nil)

		var out bytes.Buffer
		err := RunUnlockClient(ctx, mockUseCase, logger, &out, clientID.String())

		require.NoError(t, err)
		require.Contains(t, out.String(), clientID.String())
		require.Contains(t, out.String(), "unlocked")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-id", func(t *testing.T) {
		mockUseCase := &authMocks.MockClientUseCase{}

		err := RunUnlockClient(ctx, mockUseCase, logger, &bytes.Buffer{}, "not-a-uuid")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid client ID format")
	})

	t.Run("client-not-found", func(t *testing.T) {
		mockUseCase := &authMocks.MockClientUseCase{}
		mockUseCase.On("Unlock", ctx, clientID).Return(authDomain.ErrClientNotFound)

		err := RunUnlockClient(ctx, mockUseCase, logger, &bytes.Buffer{}, clientID.String())

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to unlock client")
		mockUseCase.AssertExpectations(t)
	})
}
