// Package repository implements registry persistence for sealed vaults.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16)
// types. Only sealed blobs and their checksums are stored; plaintext entries
// and key material never reach this layer.
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

// PostgreSQLVaultRepository implements VaultRecord persistence for PostgreSQL.
type PostgreSQLVaultRepository struct {
	db *sql.DB
}

// Create inserts a new vault record into the PostgreSQL database.
func (p *PostgreSQLVaultRepository) Create(ctx context.Context, record *vaultDomain.VaultRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vaults (id, name, blob, checksum, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
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

// GetByID retrieves a vault record by ID from the PostgreSQL database.
func (p *PostgreSQLVaultRepository) GetByID(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, blob, checksum, version, created_at, updated_at
			  FROM vaults
			  WHERE id = $1`

	var record vaultDomain.VaultRecord
	err := querier.QueryRowContext(ctx, query, vaultID).Scan(
		&record.ID,
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

	return &record, nil
}

// GetByName retrieves a vault record by its unique name from the PostgreSQL database.
func (p *PostgreSQLVaultRepository) GetByName(
	ctx context.Context,
	name string,
) (*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, blob, checksum, version, created_at, updated_at
			  FROM vaults
			  WHERE name = $1`

	var record vaultDomain.VaultRecord
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&record.ID,
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

	return &record, nil
}

// List retrieves vault metadata ordered by name with pagination support.
// Sealed blobs are not loaded; use GetByID or GetByName for the full record.
// Returns an empty slice if no vaults exist.
func (p *PostgreSQLVaultRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, checksum, version, created_at, updated_at
			  FROM vaults
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

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

		err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.Checksum,
			&record.Version,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault row")
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
func (p *PostgreSQLVaultRepository) UpdateBlob(
	ctx context.Context,
	vaultID uuid.UUID,
	blob string,
	checksum string,
	expectedVersion uint,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vaults
			  SET blob = $1,
			  	  checksum = $2,
				  version = version + 1,
				  updated_at = $3
			  WHERE id = $4 AND version = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		blob,
		checksum,
		time.Now().UTC(),
		vaultID,
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

// Delete removes a vault record by ID from the PostgreSQL database.
func (p *PostgreSQLVaultRepository) Delete(ctx context.Context, vaultID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM vaults WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, vaultID)
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

// NewPostgreSQLVaultRepository creates a new PostgreSQL vault repository.
func NewPostgreSQLVaultRepository(db *sql.DB) *PostgreSQLVaultRepository {
	return &PostgreSQLVaultRepository{db: db}
}
