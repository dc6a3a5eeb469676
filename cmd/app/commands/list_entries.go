package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	vaultUseCase "github.com/passvault/passvault/internal/vault/usecase"
)

// RunListEntries opens a vault with the given password, prints its entry
// names in sorted order, and closes the session again. The password is
// accepted as an argument so callers handle prompting.
//
// Requirements: Database must be migrated and the vault must exist.
func RunListEntries(
	ctx context.Context,
	useCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	vaultIDStr string,
	password string,
	format string,
) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// Parse vault ID
	vaultID, err := uuid.Parse(vaultIDStr)
	if err != nil {
		return fmt.Errorf("invalid vault ID format: %w", err)
	}

	logger.Info("listing vault entries", slog.String("vault_id", vaultID.String()))

	sessionToken, _, err := useCase.OpenVault(ctx, vaultID, password)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	// The one-shot session is not kept around
	defer func() {
		if closeErr := useCase.CloseSession(ctx, vaultID, sessionToken); closeErr != nil {
			logger.Error("failed to close session", slog.Any("error", closeErr))
		}
	}()

	names, err := useCase.ListEntryNames(ctx, vaultID, sessionToken)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputEntryNamesJSON(vaultID, names, writer)
	} else {
		outputEntryNamesText(names, writer)
	}

	logger.Info("entries listed",
		slog.String("vault_id", vaultID.String()),
		slog.Int("count", len(names)),
	)

	return nil
}

// outputEntryNamesText outputs entry names one per line.
func outputEntryNamesText(names []string, writer io.Writer) {
	if len(names) == 0 {
		_, _ = fmt.Fprintln(writer, "(no entries)")
		return
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(writer, name)
	}
}

// outputEntryNamesJSON outputs entry names in JSON format.
func outputEntryNamesJSON(vaultID uuid.UUID, names []string, writer io.Writer) {
	result := map[string]interface{}{
		"vault_id": vaultID.String(),
		"entries":  names,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
