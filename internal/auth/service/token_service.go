package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/passvault/passvault/internal/errors"
)

// tokenService implements TokenService with 256-bit random tokens hashed
// with SHA-256.
type tokenService struct{}

// GenerateToken creates a 32-byte random token, base64 URL-encoded for
// transport. Only the hash should ever be persisted; the plain token cannot
// be recovered from it.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.URLEncoding.EncodeToString(randomBytes)
	tokenHash = t.HashToken(plainToken)

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain text token using SHA-256 and returns the hex
// digest. Deterministic, so a presented token can be looked up by its hash.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// NewTokenService creates a TokenService backed by crypto/rand and SHA-256.
func NewTokenService() TokenService {
	return &tokenService{}
}
