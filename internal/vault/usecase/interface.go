// Package usecase implements business logic orchestration for vault
// management. Use cases coordinate the sealing services, the registry
// repository, and the session store; they are the only layer that both
// unseals vaults and persists sealed blobs.
package usecase

import (
	"context"

	"github.com/google/uuid"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// VaultRepository defines the interface for vault registry persistence.
type VaultRepository interface {
	Create(ctx context.Context, record *vaultDomain.VaultRecord) error
	GetByID(ctx context.Context, vaultID uuid.UUID) (*vaultDomain.VaultRecord, error)
	GetByName(ctx context.Context, name string) (*vaultDomain.VaultRecord, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.VaultRecord, error)
	UpdateBlob(ctx context.Context, vaultID uuid.UUID, blob, checksum string, expectedVersion uint) error
	Delete(ctx context.Context, vaultID uuid.UUID) error
}

// VaultUseCase defines the interface for vault management business logic.
//
// Registry operations (create, import, get, list, delete, open) work on
// sealed blobs and never require an open session. Entry operations require a
// session token from OpenVault for the same vault; a token opened for another
// vault is treated as unknown. They mutate the in-memory engine, reseal it,
// and persist the new blob before returning.
type VaultUseCase interface {
	// CreateVault creates an empty vault protected by password and stores
	// its initial sealed form. No session is opened; the derived key is
	// zeroed before returning.
	CreateVault(ctx context.Context, name, password string) (*vaultDomain.VaultRecord, error)
	// ImportVault registers an externally produced sealed blob after
	// verifying its checksum and structure. The password is not needed and
	// not asked for; a wrong blob surfaces on the first open attempt.
	ImportVault(ctx context.Context, name, blob, checksum string) (*vaultDomain.VaultRecord, error)
	GetVault(ctx context.Context, vaultID uuid.UUID) (*vaultDomain.VaultRecord, error)
	ListVaults(ctx context.Context, offset, limit int) ([]*vaultDomain.VaultRecord, error)
	// DeleteVault removes the registry record. Open sessions for the vault
	// keep their in-memory engine but fail on the next persist.
	DeleteVault(ctx context.Context, vaultID uuid.UUID) error
	// OpenVault unseals the stored blob with password and returns the plain
	// session token (shown once) plus the created session.
	OpenVault(ctx context.Context, vaultID uuid.UUID, password string) (string, *vaultDomain.Session, error)
	// CloseSession discards the session for a token, zeroing the engine.
	// Closing an unknown or expired token is a no-op.
	CloseSession(ctx context.Context, vaultID uuid.UUID, sessionToken string) error
	// GetEntry returns the secret stored under name in the open vault.
	GetEntry(ctx context.Context, vaultID uuid.UUID, sessionToken, name string) (string, error)
	// SetEntry writes name=value, reseals, persists the new blob, and
	// returns the updated registry record.
	SetEntry(ctx context.Context, vaultID uuid.UUID, sessionToken, name, value string) (*vaultDomain.VaultRecord, error)
	// RemoveEntry deletes name from the open vault. When the name is absent
	// it reports found=false and performs no reseal and no persist; the
	// registry record is returned only after a persisted removal.
	RemoveEntry(ctx context.Context, vaultID uuid.UUID, sessionToken, name string) (bool, *vaultDomain.VaultRecord, error)
	// ListEntryNames returns the entry names of the open vault in sorted
	// order.
	ListEntryNames(ctx context.Context, vaultID uuid.UUID, sessionToken string) ([]string, error)
}
