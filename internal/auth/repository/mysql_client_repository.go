package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	"github.com/passvault/passvault/internal/database"
	apperrors "github.com/passvault/passvault/internal/errors"
)

// MySQLClientRepository implements Client persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new Client into the MySQL database using BINARY(16) for UUIDs.
// New clients start with a clean lock state, so the lock columns rely on their
// schema defaults. Returns an error if UUID marshaling or database insertion fails.
func (m *MySQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO clients (id, secret, name, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.Secret,
		client.Name,
		client.IsActive,
		client.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Get retrieves a Client by ID from the MySQL database using BINARY(16) for UUIDs.
// Returns ErrClientNotFound if the client doesn't exist, or an error if UUID
// unmarshaling or database query fails.
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, secret, name, is_active, failed_attempts, locked_until, created_at
			  FROM clients WHERE id = ?`

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	var client authDomain.Client
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&client.Secret,
		&client.Name,
		&client.IsActive,
		&client.FailedAttempts,
		&client.LockedUntil,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	if err := client.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &client, nil
}

// UpdateLockState atomically updates the failed attempt counter and lock expiry
// for a client. A nil lockedUntil clears the lock.
func (m *MySQLClientRepository) UpdateLockState(
	ctx context.Context,
	clientID uuid.UUID,
	failedAttempts int,
	lockedUntil *time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `UPDATE clients SET failed_attempts = ?, locked_until = ? WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, failedAttempts, lockedUntil, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client lock state")
	}
	return nil
}

// NewMySQLClientRepository creates a new MySQL Client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}
