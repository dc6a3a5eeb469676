package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	"github.com/passvault/passvault/internal/testutil"
)

func TestNewMySQLClientRepository(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLClientRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLClientRepository{}, repo)
}

func TestMySQLClientRepository_Create(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()

	client := newTestClient("test-client-mysql")
	err := repo.Create(ctx, client)
	require.NoError(t, err)

	// Verify the client was created by retrieving it
	retrievedClient, err := repo.Get(ctx, client.ID)
	require.NoError(t, err)

	assert.Equal(t, client.ID, retrievedClient.ID)
	assert.Equal(t, client.Secret, retrievedClient.Secret)
	assert.Equal(t, client.Name, retrievedClient.Name)
	assert.Equal(t, client.IsActive, retrievedClient.IsActive)
	assert.Equal(t, 0, retrievedClient.FailedAttempts)
	assert.Nil(t, retrievedClient.LockedUntil)
	assert.WithinDuration(t, client.CreatedAt, retrievedClient.CreatedAt, time.Second)
}

func TestMySQLClientRepository_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()

	nonExistentID := uuid.Must(uuid.NewV7())
	client, err := repo.Get(ctx, nonExistentID)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
}

func TestMySQLClientRepository_UpdateLockState(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()

	client := newTestClient("lock-client-mysql")
	err := repo.Create(ctx, client)
	require.NoError(t, err)

	// Set a lock
	lockedUntil := time.Now().UTC().Add(30 * time.Minute)
	err = repo.UpdateLockState(ctx, client.ID, 0, &lockedUntil)
	require.NoError(t, err)

	retrievedClient, err := repo.Get(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, retrievedClient.LockedUntil)
	assert.WithinDuration(t, lockedUntil, *retrievedClient.LockedUntil, time.Second)
	assert.True(t, retrievedClient.IsLocked(time.Now().UTC()))

	// Clear the lock
	err = repo.UpdateLockState(ctx, client.ID, 0, nil)
	require.NoError(t, err)

	retrievedClient, err = repo.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, retrievedClient.FailedAttempts)
	assert.Nil(t, retrievedClient.LockedUntil)
	assert.False(t, retrievedClient.IsLocked(time.Now().UTC()))
}
