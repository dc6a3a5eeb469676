package dto

import (
	"time"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// VaultResponse represents a vault registry row in API responses.
// Blob carries the sealed representation and is included in create, import,
// and get responses; list responses return metadata only.
type VaultResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Blob      string    `json:"blob,omitempty"`
	Checksum  string    `json:"checksum"`
	Version   uint      `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapVaultToResponse converts a vault record to an API response for create,
// import, and get operations. The sealed blob plus checksum form the
// caller-persistable export of the vault.
func MapVaultToResponse(record *vaultDomain.VaultRecord) VaultResponse {
	return VaultResponse{
		ID:        record.ID.String(),
		Name:      record.Name,
		Blob:      record.Blob,
		Checksum:  record.Checksum,
		Version:   record.Version,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// OpenVaultResponse contains the session issued for an opened vault.
// SECURITY: The session token is only returned once and must be presented
// in the X-Session-Token header on entry operations.
type OpenVaultResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
