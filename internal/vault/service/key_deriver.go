package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// PBKDF2KeyDeriver implements KeyDeriver using PBKDF2 with SHA-256.
//
// The derivation is intentionally slow (100,000 iterations, hundreds of
// milliseconds on commodity hardware); that cost is the vault's only
// protection against offline password guessing, so it must never be made
// configurable downward. Derivation runs to completion once started; it is
// not a candidate for cancellation.
//
// The deriver places no cap on password length. Passwords beyond 64
// characters are supported but undocumented territory for interoperating
// callers; 64 is a practical assumption, not an enforced limit.
type PBKDF2KeyDeriver struct{}

// NewKeyDeriver creates a new PBKDF2KeyDeriver.
func NewKeyDeriver() *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{}
}

// Derive stretches (password, salt) into a 32-byte key for the vault's AEAD
// cipher. Deterministic: open recomputes the same key create produced,
// given the same password and the salt carried in the sealed
// representation.
func (d *PBKDF2KeyDeriver) Derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, vaultDomain.KDFIterations, vaultDomain.KeySize, sha256.New)
}
