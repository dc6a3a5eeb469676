package domain

import (
	"time"

	"github.com/google/uuid"
)

// VaultRecord is a registry row holding the sealed form of one vault.
// The registry never sees plaintext entries or key material; it stores
// whatever blob the engine produced, plus the checksum callers use to
// verify the blob before attempting to open it.
type VaultRecord struct {
	ID        uuid.UUID // Unique identifier (UUIDv7)
	Name      string    // Caller-chosen vault name, unique in the registry
	Blob      string    // Encoded sealed representation
	Checksum  string    // SHA-256 hex digest of Blob
	Version   uint      // Incremented on every stored reseal, for optimistic locking
	CreatedAt time.Time
	UpdatedAt time.Time
}
