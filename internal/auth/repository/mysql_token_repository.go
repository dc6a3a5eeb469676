package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/passvault/passvault/internal/auth/domain"
	"github.com/passvault/passvault/internal/database"
	apperrors "github.com/passvault/passvault/internal/errors"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new Token into the MySQL database using BINARY(16) for UUIDs.
// Returns an error if UUID marshaling or database insertion fails.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tokens (id, token_hash, client_id, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	clientID, err := token.ClientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		clientID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash retrieves a Token by token hash from the MySQL database using
// BINARY(16) for UUIDs. This is the authentication lookup path. Returns
// ErrTokenNotFound if the token doesn't exist, or an error if UUID unmarshaling
// or database query fails.
func (m *MySQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, client_id, expires_at, created_at
			  FROM tokens WHERE token_hash = ?`

	var token authDomain.Token
	var idBytes []byte
	var clientIDBytes []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBytes,
		&token.TokenHash,
		&clientIDBytes,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by hash")
	}

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}

	if err := token.ClientID.UnmarshalBinary(clientIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &token, nil
}

// CountExpiredBefore counts tokens that expired before the cutoff timestamp
// without deleting them. All timestamps are expected in UTC.
func (m *MySQLTokenRepository) CountExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, apperrors.New("cutoff timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM tokens WHERE expires_at < ?`

	var count int64
	err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}

	return count, nil
}

// DeleteExpiredBefore deletes tokens that expired before the cutoff timestamp.
// Returns the number of deleted tokens. All timestamps are expected in UTC.
func (m *MySQLTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, apperrors.New("cutoff timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tokens WHERE expires_at < ?`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
