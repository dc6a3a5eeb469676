package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/passvault/passvault/internal/errors"
	"github.com/passvault/passvault/internal/testutil"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

func TestNewMySQLVaultRepository(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLVaultRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLVaultRepository{}, repo)
}

func TestMySQLVaultRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	// UUID must survive the BINARY(16) round-trip
	retrieved, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, retrieved.ID)
	assert.Equal(t, record.Name, retrieved.Name)
	assert.Equal(t, record.Blob, retrieved.Blob)
	assert.Equal(t, record.Checksum, retrieved.Checksum)
	assert.Equal(t, record.Version, retrieved.Version)
	assert.WithinDuration(t, record.CreatedAt, retrieved.CreatedAt, time.Second)

	byName, err := repo.GetByName(ctx, "personal")
	require.NoError(t, err)
	assert.Equal(t, record.ID, byName.ID)
}

func TestMySQLVaultRepository_GetByID_NotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLVaultRepository(db)

	retrieved, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
}

func TestMySQLVaultRepository_List(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLVaultRepository(db)
	ctx := context.Background()

	for _, name := range []string{"bravo", "alpha"} {
		time.Sleep(time.Millisecond)
		err := repo.Create(ctx, newVaultRecord(name))
		require.NoError(t, err)
	}

	records, err := repo.List(ctx, 0, 50)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "bravo", records[1].Name)

	// List is metadata-only; sealed blobs are not loaded
	assert.Empty(t, records[0].Blob)
	assert.Empty(t, records[1].Blob)
}

func TestMySQLVaultRepository_UpdateBlob_VersionConflict(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	blobA := `{"salt":"c2FsdA==","iv":"YQ==","ciphertext":"YWFh"}`
	err = repo.UpdateBlob(ctx, record.ID, blobA, vaultDomain.Checksum(blobA), record.Version)
	require.NoError(t, err)

	blobB := `{"salt":"c2FsdA==","iv":"Yg==","ciphertext":"YmJi"}`
	err = repo.UpdateBlob(ctx, record.ID, blobB, vaultDomain.Checksum(blobB), record.Version)
	assert.ErrorIs(t, err, vaultDomain.ErrVersionConflict)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestMySQLVaultRepository_Delete(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLVaultRepository(db)
	ctx := context.Background()

	record := newVaultRecord("personal")
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	err = repo.Delete(ctx, record.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)

	err = repo.Delete(ctx, record.ID)
	assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
}
