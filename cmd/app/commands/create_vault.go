package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
	vaultUseCase "github.com/passvault/passvault/internal/vault/usecase"
)

// RunCreateVault creates an empty password-protected vault and outputs its
// registry record in either text or JSON format. The password is accepted as
// an argument so callers handle prompting; it never appears in logs.
//
// Requirements: Database must be migrated and accessible.
func RunCreateVault(
	ctx context.Context,
	useCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	password string,
	format string,
) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	logger.Info("creating vault", slog.String("name", name))

	record, err := useCase.CreateVault(ctx, name, password)
	if err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputVaultJSON(record, writer)
	} else {
		outputCreateVaultText(record, writer)
	}

	logger.Info("vault created successfully",
		slog.String("vault_id", record.ID.String()),
		slog.String("name", name),
	)

	return nil
}

// outputCreateVaultText outputs the result in human-readable text format.
func outputCreateVaultText(record *vaultDomain.VaultRecord, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nVault created successfully!")
	_, _ = fmt.Fprintf(writer, "Vault ID: %s\n", record.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", record.Name)
	_, _ = fmt.Fprintf(writer, "Checksum: %s\n", record.Checksum)
	_, _ = fmt.Fprintln(writer, "\nUse 'export-vault' to print the sealed blob for offline backup.")
}

// outputVaultJSON outputs a registry record in JSON format for machine
// consumption. Shared by the vault commands that print full records.
func outputVaultJSON(record *vaultDomain.VaultRecord, writer io.Writer) {
	result := map[string]interface{}{
		"vault_id": record.ID.String(),
		"name":     record.Name,
		"blob":     record.Blob,
		"checksum": record.Checksum,
		"version":  record.Version,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
