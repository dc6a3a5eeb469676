// Package repository implements client and token persistence for the
// authentication layer.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16)
// types.
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

// PostgreSQLClientRepository implements Client persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new Client into the PostgreSQL database. New clients start
// with a clean lock state, so the lock columns rely on their schema defaults.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (id, secret, name, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
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

// Get retrieves a Client by ID from the PostgreSQL database.
// Returns ErrClientNotFound if the client doesn't exist.
func (p *PostgreSQLClientRepository) Get(
	ctx context.Context,
	clientID uuid.UUID,
) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret, name, is_active, failed_attempts, locked_until, created_at
			  FROM clients WHERE id = $1`

	var client authDomain.Client

	err := querier.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
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

	return &client, nil
}

// UpdateLockState atomically updates the failed attempt counter and lock expiry
// for a client. A nil lockedUntil clears the lock.
func (p *PostgreSQLClientRepository) UpdateLockState(
	ctx context.Context,
	clientID uuid.UUID,
	failedAttempts int,
	lockedUntil *time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE clients SET failed_attempts = $1, locked_until = $2 WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, failedAttempts, lockedUntil, clientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client lock state")
	}
	return nil
}

// NewPostgreSQLClientRepository creates a new PostgreSQL Client repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}
