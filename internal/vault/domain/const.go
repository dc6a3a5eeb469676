package domain

// Algorithm represents the AEAD cipher used to seal vault contents.
//
// Both supported algorithms use 256-bit keys and 12-byte nonces, so the
// sealed representation is byte-compatible across them. The algorithm is
// a deployment-level choice; a vault sealed under one algorithm can only
// be opened under the same one.
type Algorithm string

const (
	// AESGCM selects AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 selects ChaCha20-Poly1305. Preferred on hardware without
	// AES acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// SaltSize is the size in bytes of the key derivation salt. The salt is
	// generated once per vault and is public (it travels in the sealed
	// representation in plaintext).
	SaltSize = 16

	// NonceSize is the size in bytes of the per-seal nonce. A fresh nonce is
	// drawn on every seal; reuse under the same key breaks both
	// confidentiality and authenticity.
	NonceSize = 12

	// KeySize is the size in bytes of the derived master key (256 bits).
	KeySize = 32

	// KDFIterations is the PBKDF2-SHA256 iteration count. It is part of the
	// sealed format contract: blobs do not record it, so changing this value
	// makes existing vaults unreadable.
	KDFIterations = 100_000
)
