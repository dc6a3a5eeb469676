package dto

import (
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// ListVaultsResponse represents a paginated list of vaults in API responses.
type ListVaultsResponse struct {
	Data []VaultResponse `json:"data"`
}

// MapVaultsToListResponse converts a slice of vault records to a list
// response. Sealed blobs are excluded; callers export a vault through the
// single-vault get endpoint.
func MapVaultsToListResponse(records []*vaultDomain.VaultRecord) ListVaultsResponse {
	data := make([]VaultResponse, 0, len(records))
	for _, record := range records {
		data = append(data, VaultResponse{
			ID:        record.ID.String(),
			Name:      record.Name,
			Checksum:  record.Checksum,
			Version:   record.Version,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		})
	}

	return ListVaultsResponse{
		Data: data,
	}
}
