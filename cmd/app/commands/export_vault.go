package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
	vaultUseCase "github.com/passvault/passvault/internal/vault/usecase"
)

// RunExportVault prints the sealed blob and checksum of a vault, the form a
// caller persists for offline backup and later import. No password is needed;
// the blob stays sealed.
//
// Requirements: Database must be migrated and the vault must exist.
func RunExportVault(
	ctx context.Context,
	useCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	vaultIDStr string,
	format string,
) error {
	logger.Info("exporting vault", slog.String("vault_id", vaultIDStr))

	// Parse vault ID
	vaultID, err := uuid.Parse(vaultIDStr)
	if err != nil {
		return fmt.Errorf("invalid vault ID format: %w", err)
	}

	record, err := useCase.GetVault(ctx, vaultID)
	if err != nil {
		return fmt.Errorf("failed to get vault: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputVaultJSON(record, writer)
	} else {
		outputExportVaultText(record, writer)
	}

	logger.Info("vault exported",
		slog.String("vault_id", record.ID.String()),
		slog.String("name", record.Name),
	)

	return nil
}

// outputExportVaultText outputs the exportable form in text format. The blob
// and checksum lines are what an import needs.
func outputExportVaultText(record *vaultDomain.VaultRecord, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "# Vault: %s (%s), version %d\n", record.Name, record.ID.String(), record.Version)
	_, _ = fmt.Fprintf(writer, "Blob: %s\n", record.Blob)
	_, _ = fmt.Fprintf(writer, "Checksum: %s\n", record.Checksum)
}
