package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
	vaultMocks "github.com/passvault/passvault/internal/vault/usecase/mocks"
)

func testVaultRecord(name string) *vaultDomain.VaultRecord {
	now := time.Now().UTC()
	return &vaultDomain.VaultRecord{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Blob:      "c2VhbGVkLWJsb2I=",
		Checksum:  "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRunCreateVault(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		record := testVaultRecord("personal")
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("CreateVault", ctx, "personal", "hunter2").Return(record, nil)

		var out bytes.Buffer
		err := RunCreateVault(ctx, mockUseCase, logger, &out, "personal", "hunter2", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), record.ID.String())
		require.Contains(t, out.String(), "personal")
		require.Contains(t, out.String(), record.Checksum)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		record := testVaultRecord("personal")
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("CreateVault", ctx, "personal", "hunter2").Return(record, nil)

		var out bytes.Buffer
		err := RunCreateVault(ctx, mockUseCase, logger, &out, "personal", "hunter2", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"vault_id"`)
		require.Contains(t, out.String(), record.Blob)
		require.Contains(t, out.String(), record.Checksum)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-password", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}

		err := RunCreateVault(ctx, mockUseCase, logger, &bytes.Buffer{}, "personal", "", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "password cannot be empty")
	})

	t.Run("duplicate-name", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("CreateVault", ctx, "personal", "hunter2").
			Return(nil, vaultDomain.ErrVaultAlreadyExists)

		err := RunCreateVault(ctx, mockUseCase, logger, &bytes.Buffer{}, "personal", "hunter2", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create vault")
		mockUseCase.AssertExpectations(t)
	})
}
