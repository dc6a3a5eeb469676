package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is an open vault: the unsealed engine plus the registry state it
// was opened from. Sessions live in memory only. The engine holds the derived
// master key, and serializing it anywhere would defeat the sealed format, so
// a session cannot survive a process restart.
//
// The engine is single-owner. Every read or mutation of Engine and
// RecordVersion must happen inside WithLock; the exported fields exist so
// use cases can reach them from inside the locked closure.
type Session struct {
	ID        uuid.UUID
	TokenHash string // SHA-256 hex of the session token; the plain token is never kept
	VaultID   uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time

	// Engine and RecordVersion are guarded by the session lock.
	// RecordVersion tracks the registry row version the engine state was
	// sealed from, for optimistic updates on reseal.
	Engine        *Engine
	RecordVersion uint

	mu sync.Mutex
}

// NewSession wraps an unsealed engine in a session. The session takes
// ownership of the engine.
func NewSession(
	tokenHash string,
	vaultID uuid.UUID,
	engine *Engine,
	recordVersion uint,
	expiresAt time.Time,
) *Session {
	return &Session{
		ID:            uuid.Must(uuid.NewV7()),
		TokenHash:     tokenHash,
		VaultID:       vaultID,
		CreatedAt:     time.Now().UTC(),
		ExpiresAt:     expiresAt,
		Engine:        engine,
		RecordVersion: recordVersion,
	}
}

// WithLock serializes access to the session's mutable state. It returns
// ErrSessionNotFound without calling fn when the session was already closed.
func (s *Session) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Engine == nil {
		return ErrSessionNotFound
	}
	return fn()
}

// Expired reports whether the session passed its deadline.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Close zeroes the engine's key material and drops the engine. Safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Engine != nil {
		s.Engine.Close()
		s.Engine = nil
	}
}
