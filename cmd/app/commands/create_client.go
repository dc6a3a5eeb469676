package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	authUseCase "github.com/passvault/passvault/internal/auth/usecase"
)

// RunCreateClient creates a new authentication client and outputs the client
// ID and plain secret in either text or JSON format. The secret is shown only
// once; it is stored hashed.
//
// Requirements: Database must be migrated and accessible.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new client", slog.String("name", name))

	// Create input
	input := &authDomain.CreateClientInput{
		Name:     name,
		IsActive: isActive,
	}

	// Create the client
	output, err := clientUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputClientJSON(output, io.Writer)
	} else {
		outputClientText(output, io.Writer)
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// outputClientText outputs the result in human-readable text format.
func outputClientText(output *authDomain.CreateClientOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nClient created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputClientJSON outputs the result in JSON format for machine consumption.
func outputClientJSON(output *authDomain.CreateClientOutput, writer io.Writer) {
	result := map[string]string{
		"client_id": output.ID.String(),
		"secret":    output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
