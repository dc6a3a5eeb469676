package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passvault/passvault/internal/database"
	apperrors "github.com/passvault/passvault/internal/errors"
	"github.com/passvault/passvault/internal/testutil"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// newVaultRecord builds a registry row with a plausible sealed blob and a
// checksum that actually matches it.
func newVaultRecord(name string) *vaultDomain.VaultRecord {
	blob := `{"salt":"c2FsdHNhbHRzYWx0c2FsdA==","iv":"bm9uY2Vub25jZQ==","ciphertext":"Y2lwaGVydGV4dA=="}`
	now := time.Now().UTC()
	return &vaultDomain.VaultRecord{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Blob:      blob,
		Checksum:  vaultDomain.Checksum(blob),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewPostgreSQLVaultRepository(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLVaultRepository{}, repo)
}

func TestPostgreSQLVaultRepository_Create(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	// Verify the vault was created by reading it back
	var readRecord vaultDomain.VaultRecord
	query := `SELECT id, name, blob, checksum, version, created_at, updated_at
			  FROM vaults WHERE id = $1`
	err = db.QueryRowContext(ctx, query, record.ID).Scan(
		&readRecord.ID,
		&readRecord.Name,
		&readRecord.Blob,
		&readRecord.Checksum,
		&readRecord.Version,
		&readRecord.CreatedAt,
		&readRecord.UpdatedAt,
	)
	require.NoError(t, err)

	assert.Equal(t, record.ID, readRecord.ID)
	assert.Equal(t, record.Name, readRecord.Name)
	assert.Equal(t, record.Blob, readRecord.Blob)
	assert.Equal(t, record.Checksum, readRecord.Checksum)
	assert.Equal(t, record.Version, readRecord.Version)
	assert.WithinDuration(t, record.CreatedAt, readRecord.CreatedAt, time.Second)
	assert.WithinDuration(t, record.UpdatedAt, readRecord.UpdatedAt, time.Second)
}

func TestPostgreSQLVaultRepository_Create_DuplicateName(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, newVaultRecord("personal"))
	require.NoError(t, err)

	err = repo.Create(ctx, newVaultRecord("personal"))
	assert.Error(t, err, "should fail due to unique constraint on name")
}

func TestPostgreSQLVaultRepository_GetByID(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	retrieved, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.NotNil(t, retrieved)

	assert.Equal(t, record.ID, retrieved.ID)
	assert.Equal(t, record.Name, retrieved.Name)
	assert.Equal(t, record.Blob, retrieved.Blob)
	assert.Equal(t, record.Checksum, retrieved.Checksum)
	assert.Equal(t, record.Version, retrieved.Version)
}

func TestPostgreSQLVaultRepository_GetByID_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	retrieved, err := repo.GetByID(ctx, uuid.Must(uuid.NewV7()))

	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLVaultRepository_GetByName(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("work")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	retrieved, err := repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.NotNil(t, retrieved)
	assert.Equal(t, record.ID, retrieved.ID)
	assert.Equal(t, "work", retrieved.Name)
}

func TestPostgreSQLVaultRepository_GetByName_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	retrieved, err := repo.GetByName(ctx, "missing")

	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
}

func TestPostgreSQLVaultRepository_List(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	names := []string{"charlie", "alpha", "bravo"}
	for _, name := range names {
		time.Sleep(time.Millisecond) // Ensure different timestamps for UUIDv7 ordering
		err := repo.Create(ctx, newVaultRecord(name))
		require.NoError(t, err, "failed to create vault with name: %s", name)
	}

	records, err := repo.List(ctx, 0, 50)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Ordered by name ascending
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "bravo", records[1].Name)
	assert.Equal(t, "charlie", records[2].Name)

	// List is metadata-only; sealed blobs are not loaded
	for _, record := range records {
		assert.Empty(t, record.Blob)
		assert.NotEmpty(t, record.Checksum)
	}
}

func TestPostgreSQLVaultRepository_List_Empty(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)

	records, err := repo.List(context.Background(), 0, 50)
	require.NoError(t, err)
	assert.NotNil(t, records, "should return empty slice, not nil")
	assert.Empty(t, records)
}

func TestPostgreSQLVaultRepository_List_Pagination(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		time.Sleep(time.Millisecond)
		err := repo.Create(ctx, newVaultRecord(fmt.Sprintf("vault-%d", i)))
		require.NoError(t, err)
	}

	// First page
	page1, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "vault-0", page1[0].Name)
	assert.Equal(t, "vault-1", page1[1].Name)

	// Second page
	page2, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "vault-2", page2[0].Name)
	assert.Equal(t, "vault-3", page2[1].Name)

	// Last page is short
	page3, err := repo.List(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "vault-4", page3[0].Name)
}

func TestPostgreSQLVaultRepository_UpdateBlob(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	newBlob := `{"salt":"c2FsdHNhbHRzYWx0c2FsdA==","iv":"ZnJlc2hub25jZQ==","ciphertext":"bmV3Y2lwaGVy"}`
	newChecksum := vaultDomain.Checksum(newBlob)

	err = repo.UpdateBlob(ctx, record.ID, newBlob, newChecksum, record.Version)
	require.NoError(t, err)

	updated, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, newBlob, updated.Blob)
	assert.Equal(t, newChecksum, updated.Checksum)
	assert.Equal(t, record.Version+1, updated.Version)
	assert.True(t, updated.UpdatedAt.After(record.UpdatedAt) || updated.UpdatedAt.Equal(record.UpdatedAt))
}

func TestPostgreSQLVaultRepository_UpdateBlob_VersionConflict(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	// First writer wins and bumps the version
	blobA := `{"salt":"c2FsdA==","iv":"YQ==","ciphertext":"YWFh"}`
	err = repo.UpdateBlob(ctx, record.ID, blobA, vaultDomain.Checksum(blobA), record.Version)
	require.NoError(t, err)

	// Second writer still holds the old version and must lose
	blobB := `{"salt":"c2FsdA==","iv":"Yg==","ciphertext":"YmJi"}`
	err = repo.UpdateBlob(ctx, record.ID, blobB, vaultDomain.Checksum(blobB), record.Version)
	assert.ErrorIs(t, err, vaultDomain.ErrVersionConflict)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The losing write must not have touched the row
	current, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, blobA, current.Blob)
	assert.Equal(t, record.Version+1, current.Version)
}

func TestPostgreSQLVaultRepository_UpdateBlob_NonExistent(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	blob := `{"salt":"c2FsdA==","iv":"YQ==","ciphertext":"YWFh"}`
	err := repo.UpdateBlob(ctx, uuid.Must(uuid.NewV7()), blob, vaultDomain.Checksum(blob), 1)
	assert.ErrorIs(t, err, vaultDomain.ErrVersionConflict)
}

func TestPostgreSQLVaultRepository_Delete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	err = repo.Delete(ctx, record.ID)
	require.NoError(t, err)

	// The row must be gone
	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vaults WHERE id = $1`, record.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostgreSQLVaultRepository_Delete_NonExistent(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)

	err := repo.Delete(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
}

func TestPostgreSQLVaultRepository_GetByName_WithTransaction(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	// Use TxManager to read the vault within a transaction
	txManager := database.NewTxManager(db)
	var retrieved *vaultDomain.VaultRecord

	err = txManager.WithTx(ctx, func(txCtx context.Context) error {
		var txErr error
		retrieved, txErr = repo.GetByName(txCtx, "personal")
		return txErr
	})

	require.NoError(t, err)
	assert.NotNil(t, retrieved)
	assert.Equal(t, record.ID, retrieved.ID)
}
