// Package service provides credential services for API access: client
// secret generation and verification, and opaque token generation.
//
// Token generation is shared with the vault context, which issues session
// tokens for open vaults using the same generate-and-hash scheme.
package service

// SecretService defines operations for client secret generation and
// validation. Client secrets are long-lived credentials, so implementations
// hash them with a slow password hash rather than a plain digest.
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (shown once to the operator) and
	// the hashed version (stored in the database).
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret for storage.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a stored hash in
	// constant time. Returns true on match.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService defines operations for opaque token generation and hashing.
// Tokens are short-lived, so a fast digest (SHA-256) is used for the stored
// form; the plain token exists only in the issuance response.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (shown once) and its hash (the only
	// form ever stored or compared).
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token with SHA-256, hex encoded.
	HashToken(plainToken string) string
}
