package dto

import (
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// EntryResponse represents a decrypted entry in API responses.
// SECURITY: Value contains plaintext and must be transmitted over HTTPS in
// production.
type EntryResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListEntriesResponse represents the entry names of an open vault.
// Values are never included in listings.
type ListEntriesResponse struct {
	Data []string `json:"data"`
}

// SealedStateResponse represents the refreshed sealed state of a vault after
// a mutating entry operation. Callers that mirror the registry persist the
// blob and checksum from here.
type SealedStateResponse struct {
	Blob     string `json:"blob"`
	Checksum string `json:"checksum"`
	Version  uint   `json:"version"`
}

// MapVaultToSealedStateResponse converts a resealed vault record to the
// sealed state carried by mutation responses.
func MapVaultToSealedStateResponse(record *vaultDomain.VaultRecord) SealedStateResponse {
	return SealedStateResponse{
		Blob:     record.Blob,
		Checksum: record.Checksum,
		Version:  record.Version,
	}
}

// RemoveEntryResponse reports whether an entry existed. The sealed state is
// present only when a removal actually happened; removing an absent entry
// does not reseal the vault.
type RemoveEntryResponse struct {
	Found    bool   `json:"found"`
	Blob     string `json:"blob,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Version  uint   `json:"version,omitempty"`
}

// MapRemovalToResponse converts a removal result to an API response. A nil
// record means nothing was removed.
func MapRemovalToResponse(found bool, record *vaultDomain.VaultRecord) RemoveEntryResponse {
	response := RemoveEntryResponse{
		Found: found,
	}
	if record != nil {
		response.Blob = record.Blob
		response.Checksum = record.Checksum
		response.Version = record.Version
	}

	return response
}
