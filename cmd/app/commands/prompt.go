package commands

import (
	"crypto/subtle"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// passwordEnvVar lets scripts supply the vault password non-interactively.
// When it is set, prompts and confirmation are skipped.
const passwordEnvVar = "VAULT_PASSWORD" //nolint:gosec // env var name, not a credential

// readPassword reads a password from the terminal without echoing.
func readPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after the hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// readPasswordConfirm reads a password twice and ensures both entries match.
// Both buffers are zeroed; the returned slice is a fresh copy.
func readPasswordConfirm() ([]byte, error) {
	password1, err := readPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer vaultDomain.Zero(password1)

	password2, err := readPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer vaultDomain.Zero(password2)

	if subtle.ConstantTimeCompare(password1, password2) != 1 {
		return nil, fmt.Errorf("passwords do not match")
	}

	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// passwordFromEnv returns the password from VAULT_PASSWORD, or nil when unset.
func passwordFromEnv() []byte {
	password := os.Getenv(passwordEnvVar)
	if password == "" {
		return nil
	}
	// Copy so callers can zero the result without touching the env copy
	result := make([]byte, len(password))
	copy(result, password)
	return result
}

// GetPassword retrieves the vault password from the environment or prompts
// the operator. The caller is responsible for zeroing the returned slice.
func GetPassword(prompt string) ([]byte, error) {
	if password := passwordFromEnv(); password != nil {
		return password, nil
	}
	return readPassword(prompt)
}

// GetPasswordConfirmed is like GetPassword but prompts twice, for commands
// that set a new password. The environment variable skips confirmation.
func GetPasswordConfirmed() ([]byte, error) {
	if password := passwordFromEnv(); password != nil {
		return password, nil
	}
	return readPasswordConfirm()
}
