package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/passvault/passvault/internal/database"
	apperrors "github.com/passvault/passvault/internal/errors"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// MySQLVaultRepository implements VaultRecord persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLVaultRepository struct {
	db *sql.DB
}

// Create inserts a new vault record into the MySQL database.
func (m *MySQLVaultRepository) Create(ctx context.Context, record *vaultDomain.VaultRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vaults (id, name, blob, checksum, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal vault id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.Name,
		record.Blob,
		record.Checksum,
		record.Version,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vault")
	}
	return nil
}

// GetByID retrieves a vault record by ID from the MySQL database.
func (m *MySQLVaultRepository) GetByID(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, blob, checksum, version, created_at, updated_at
			  FROM vaults
			  WHERE id = ?`

	id, err := vaultID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	var record vaultDomain.VaultRecord
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&record.Name,
		&record.Blob,
		&record.Checksum,
		&record.Version,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by id")
	}

	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
	}

	return &record, nil
}

// GetByName retrieves a vault record by its unique name from the MySQL database.
func (m *MySQLVaultRepository) GetByName(
	ctx context.Context,
	name string,
) (*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, blob, checksum, version, created_at, updated_at
			  FROM vaults
			  WHERE name = ?`

	var record vaultDomain.VaultRecord
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes,
		&record.Name,
		&record.Blob,
		&record.Checksum,
		&record.Version,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by name")
	}

	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
	}

	return &record, nil
}

// List retrieves vault metadata ordered by name with pagination support.
// Sealed blobs are not loaded; use GetByID or GetByName for the full record.
// Returns an empty slice if no vaults exist.
func (m *MySQLVaultRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, checksum, version, created_at, updated_at
			  FROM vaults
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	records := make([]*vaultDomain.VaultRecord, 0)
	for rows.Next() {
		var record vaultDomain.VaultRecord
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
			&record.Name,
			&record.Checksum,
			&record.Version,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault row")
		}

		if err := record.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating vault rows")
	}

	return records, nil
}

// UpdateBlob replaces the sealed blob and checksum of a vault, guarded by an
// optimistic version check. The row is only updated when the stored version
// still matches expectedVersion; otherwise ErrVersionConflict is returned and
// the caller must re-open the vault from the current blob.
func (m *MySQLVaultRepository) UpdateBlob(
	ctx context.Context,
	vaultID uuid.UUID,
	blob string,
	checksum string,
	expectedVersion uint,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vaults
			  SET blob = ?,
			  	  checksum = ?,
				  version = version + 1,
				  updated_at = ?
			  WHERE id = ? AND version = ?`

	id, err := vaultID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal vault id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		blob,
		checksum,
		time.Now().UTC(),
		id,
		expectedVersion,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update vault blob")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return vaultDomain.ErrVersionConflict
	}

	return nil
}

// Delete removes a vault record by ID from the MySQL database.
func (m *MySQLVaultRepository) Delete(ctx context.Context, vaultID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM vaults WHERE id = ?`

	id, err := vaultID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal vault id")
	}

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return vaultDomain.ErrVaultNotFound
	}

	return nil
}

// NewMySQLVaultRepository creates a new MySQL vault repository.
func NewMySQLVaultRepository(db *sql.DB) *MySQLVaultRepository {
	return &MySQLVaultRepository{db: db}
}
