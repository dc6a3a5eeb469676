// Package service implements the vault protocol: password-based key
// derivation, AEAD sealing and opening of vault contents, and optional
// KMS wrapping of sealed blobs at rest.
package service

import (
	"context"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg vaultDomain.Algorithm) (AEAD, error)
}

// KeyDeriver defines the interface for deriving master keys from passwords.
type KeyDeriver interface {
	// Derive stretches a password and salt into a 32-byte master key.
	// Deterministic: the same inputs always yield the same key.
	Derive(password string, salt []byte) []byte
}

// Sealer defines the vault protocol operations.
type Sealer interface {
	// Create builds a fresh engine from a password and returns it together
	// with its initial sealed representation and checksum.
	Create(password string) (*vaultDomain.Engine, string, string, error)

	// Open reconstructs an engine from a sealed representation and password.
	// When expectedChecksum is non-empty it is verified before any
	// decryption is attempted.
	Open(password, blob, expectedChecksum string) (*vaultDomain.Engine, error)

	// Seal exports the engine's current entries as a new sealed
	// representation and checksum.
	Seal(engine *vaultDomain.Engine) (string, string, error)
}

// BlobKeeper wraps sealed blobs before they are handed to the registry and
// unwraps them on the way out. Implementations must be passthrough-safe:
// Unwrap(Wrap(blob)) == blob.
type BlobKeeper interface {
	// Wrap protects a sealed blob for storage at rest.
	Wrap(ctx context.Context, blob string) (string, error)

	// Unwrap recovers a sealed blob from its stored form.
	Unwrap(ctx context.Context, stored string) (string, error)

	// Close releases any provider resources held by the keeper.
	Close() error
}
