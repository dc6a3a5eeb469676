package service

import (
	"sync"
	"time"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// SessionStore holds open vault sessions keyed by session token hash, with
// periodic cleanup of expired sessions. Sessions are memory-only; removing
// one closes its engine and zeroes the derived key.
type SessionStore struct {
	sessions sync.Map // map[string]*vaultDomain.Session keyed by token hash
	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates a session store and starts the cleanup goroutine.
// Callers must call Stop() on shutdown so expired engines are zeroed and the
// goroutine exits.
func NewSessionStore(cleanupInterval time.Duration) *SessionStore {
	store := &SessionStore{
		done: make(chan struct{}),
	}

	go store.cleanupExpired(cleanupInterval)

	return store
}

// Add registers an open session under its token hash.
func (s *SessionStore) Add(session *vaultDomain.Session) {
	s.sessions.Store(session.TokenHash, session)
}

// Get returns the session for a token hash. Expired sessions are removed on
// lookup and reported as not found.
func (s *SessionStore) Get(tokenHash string) (*vaultDomain.Session, error) {
	val, ok := s.sessions.Load(tokenHash)
	if !ok {
		return nil, vaultDomain.ErrSessionNotFound
	}

	session := val.(*vaultDomain.Session)
	if session.Expired(time.Now().UTC()) {
		s.Remove(tokenHash)
		return nil, vaultDomain.ErrSessionNotFound
	}

	return session, nil
}

// Remove closes the session for a token hash and forgets it. Removing an
// unknown token hash is a no-op.
func (s *SessionStore) Remove(tokenHash string) {
	val, ok := s.sessions.LoadAndDelete(tokenHash)
	if !ok {
		return
	}
	val.(*vaultDomain.Session).Close()
}

// Len returns the number of stored sessions, including any that expired but
// have not been cleaned up yet.
func (s *SessionStore) Len() int {
	count := 0
	s.sessions.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Stop terminates the cleanup goroutine and closes every stored session.
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.sessions.Range(func(key, val any) bool {
		s.sessions.Delete(key)
		val.(*vaultDomain.Session).Close()
		return true
	})
}

// cleanupExpired removes expired sessions periodically so abandoned engines
// do not keep key material in memory until the next lookup.
func (s *SessionStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now().UTC()
			s.sessions.Range(func(key, val any) bool {
				if val.(*vaultDomain.Session).Expired(now) {
					s.Remove(key.(string))
				}
				return true
			})
		}
	}
}
