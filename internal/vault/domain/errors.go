package domain

import (
	"github.com/passvault/passvault/internal/errors"
)

// Vault error definitions.
//
// The cryptographic errors deliberately reveal as little as possible. In
// particular ErrDecryptionFailed covers every way an open can fail after the
// checksum step, so a caller can never tell a wrong password from tampered
// data. Do not split it.
var (
	// ErrIntegrityCheckFailed indicates the caller-supplied checksum does not
	// match the sealed representation string. It is raised before any
	// decryption is attempted and signals corruption of the blob in transport
	// or storage, not a wrong password.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrIntegrityCheckFailed = errors.Wrap(errors.ErrInvalidInput, "integrity check failed")

	// ErrDecryptionFailed indicates an open failed after the checksum step.
	//
	// This error can occur due to:
	//   - Wrong password (derived key does not authenticate the ciphertext)
	//   - Ciphertext, nonce, or salt tampered with
	//   - Malformed sealed representation
	//   - Decrypted plaintext is not a valid entries map
	//
	// The causes are indistinguishable on purpose; disclosing which one
	// occurred would give attackers a password-vs-corruption oracle.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrPasswordRequired indicates an empty master password.
	ErrPasswordRequired = errors.Wrap(errors.ErrInvalidInput, "password required")

	// ErrInvalidSealedBlob indicates an imported blob is not a structurally
	// valid sealed representation. Unlike ErrDecryptionFailed this carries no
	// password information; import never touches a key.
	ErrInvalidSealedBlob = errors.Wrap(errors.ErrInvalidInput, "invalid sealed representation")

	// ErrNameRequired indicates a missing entry name on a read or write.
	ErrNameRequired = errors.Wrap(errors.ErrInvalidInput, "entry name required")

	// ErrVaultNameRequired indicates a missing vault name on create or import.
	ErrVaultNameRequired = errors.Wrap(errors.ErrInvalidInput, "vault name required")

	// ErrUnsupportedAlgorithm indicates an unknown AEAD algorithm was configured.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates key material that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrVaultNotFound indicates the vault does not exist in the registry.
	ErrVaultNotFound = errors.Wrap(errors.ErrNotFound, "vault not found")

	// ErrVaultAlreadyExists indicates a registry name collision.
	ErrVaultAlreadyExists = errors.Wrap(errors.ErrConflict, "vault already exists")

	// ErrEntryNotFound indicates the entry name is absent from the vault.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "entry not found")

	// ErrSessionNotFound indicates the session token does not match an open
	// session, either because it never existed, it expired, or the session
	// was closed and its engine discarded.
	ErrSessionNotFound = errors.Wrap(errors.ErrUnauthorized, "session not found or expired")

	// ErrVersionConflict indicates a stored blob changed underneath an update.
	ErrVersionConflict = errors.Wrap(errors.ErrConflict, "vault version conflict")
)
