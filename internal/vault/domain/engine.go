// Package domain defines the core vault models: the in-memory engine that
// owns a decrypted name→secret map, the sealed representation it is
// exported to, and the registry record that stores sealed blobs.
//
// An engine holds the only copy of the derived master key and the decrypted
// entries. It never touches persistent storage; callers obtain a sealed
// representation after each mutation and persist it themselves.
package domain

// Engine is a live, unlocked vault. It is created either fresh (new salt,
// empty entries) or by opening a sealed representation with the right
// password. One engine instance is single-owner: callers must serialize
// access to it, typically with the owning session's mutex.
type Engine struct {
	// Salt is the public key derivation input, generated once and fixed for
	// the vault's lifetime. It travels in every sealed representation.
	Salt []byte
	// MasterKey is derived from (password, salt). It lives in memory only
	// and is never serialized or logged.
	MasterKey []byte `json:"-"`

	entries map[string]string
}

// NewEngine creates an engine from derived key material. A nil entries map
// yields an empty vault.
func NewEngine(salt, masterKey []byte, entries map[string]string) *Engine {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Engine{
		Salt:      salt,
		MasterKey: masterKey,
		entries:   entries,
	}
}

// Get returns the secret stored under name. A missing name is not an error;
// the second return value reports whether the name exists.
func (e *Engine) Get(name string) (string, bool) {
	value, ok := e.entries[name]
	return value, ok
}

// Set inserts or overwrites the secret under name. The change is in-memory
// only; the caller must seal afterward to obtain an updated representation.
func (e *Engine) Set(name, value string) {
	e.entries[name] = value
}

// Remove deletes name from the vault and reports whether it was present.
// Removing an absent name is a no-op and does not require resealing.
func (e *Engine) Remove(name string) bool {
	if _, ok := e.entries[name]; !ok {
		return false
	}
	delete(e.entries, name)
	return true
}

// Names returns the entry names in unspecified order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.entries))
	for name := range e.entries {
		names = append(names, name)
	}
	return names
}

// Len returns the number of entries.
func (e *Engine) Len() int {
	return len(e.entries)
}

// Entries returns a copy of the decrypted map for serialization. Mutations
// on the copy do not affect the engine.
func (e *Engine) Entries() map[string]string {
	out := make(map[string]string, len(e.entries))
	for name, value := range e.entries {
		out[name] = value
	}
	return out
}

// Close zeroes the master key and drops the decrypted entries. The engine
// is unusable afterwards.
func (e *Engine) Close() {
	Zero(e.MasterKey)
	e.MasterKey = nil
	e.entries = make(map[string]string)
}
