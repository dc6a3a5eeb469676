package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an issued bearer token. Only the SHA-256 hash of the token is
// stored; the plain token exists only in the issuance response.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ClientID  uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IssueTokenInput contains the client credentials presented for token issuance.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string
}

// IssueTokenOutput contains the issued token.
// SECURITY: The plain token is only returned once and must be saved securely.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
