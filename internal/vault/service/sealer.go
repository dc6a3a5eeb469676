package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// SealerService implements the Sealer interface: it orchestrates key
// derivation, authenticated encryption, and integrity checking around the
// in-memory engine.
//
// The orchestration order on open is fixed and security-relevant:
//
//  1. verify the caller-supplied checksum, if any, over the raw blob
//  2. parse the blob into salt, iv, and ciphertext
//  3. derive the key from the password and the parsed salt
//  4. authenticated-decrypt
//  5. parse the plaintext as the entries map
//
// Only step 1 may fail with ErrIntegrityCheckFailed. Every failure from
// step 2 onward surfaces as ErrDecryptionFailed so callers cannot
// distinguish a wrong password from tampered or corrupted data.
type SealerService struct {
	keyDeriver  KeyDeriver
	aeadManager AEADManager
	algorithm   vaultDomain.Algorithm
}

// NewSealer creates a SealerService using the given key deriver, cipher
// factory, and AEAD algorithm.
func NewSealer(keyDeriver KeyDeriver, aeadManager AEADManager, algorithm vaultDomain.Algorithm) *SealerService {
	return &SealerService{
		keyDeriver:  keyDeriver,
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}
}

// Create builds a fresh vault from a password: a new random 16-byte salt,
// a derived master key, and an empty entries map. It returns the engine
// together with its initial sealed representation and checksum, so the
// caller has something to persist immediately.
func (s *SealerService) Create(password string) (*vaultDomain.Engine, string, string, error) {
	if password == "" {
		return nil, "", "", vaultDomain.ErrPasswordRequired
	}

	salt := make([]byte, vaultDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	masterKey := s.keyDeriver.Derive(password, salt)
	engine := vaultDomain.NewEngine(salt, masterKey, nil)

	blob, checksum, err := s.Seal(engine)
	if err != nil {
		engine.Close()
		return nil, "", "", err
	}

	return engine, blob, checksum, nil
}

// Open reconstructs an engine from a sealed representation and password.
//
// When expectedChecksum is non-empty it is recomputed over the raw blob and
// compared first; a mismatch fails with ErrIntegrityCheckFailed before any
// cryptographic work. The checksum step is structural only: it proves the
// blob was not corrupted in transport, not that the password is right.
//
// Everything after the checksum step fails uniformly with
// ErrDecryptionFailed: malformed blob, undecodable fields, authentication
// failure, or plaintext that is not an entries map.
func (s *SealerService) Open(password, blob, expectedChecksum string) (*vaultDomain.Engine, error) {
	if password == "" {
		return nil, vaultDomain.ErrPasswordRequired
	}

	if expectedChecksum != "" && vaultDomain.Checksum(blob) != expectedChecksum {
		return nil, vaultDomain.ErrIntegrityCheckFailed
	}

	sealed, err := vaultDomain.DecodeSealedRepresentation(blob)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	salt, err := base64.StdEncoding.DecodeString(sealed.Salt)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	iv, err := base64.StdEncoding.DecodeString(sealed.IV)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.Ciphertext)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	masterKey := s.keyDeriver.Derive(password, salt)

	cipher, err := s.aeadManager.CreateCipher(masterKey, s.algorithm)
	if err != nil {
		vaultDomain.Zero(masterKey)
		return nil, err
	}

	plaintext, err := cipher.Decrypt(ciphertext, iv, nil)
	if err != nil {
		vaultDomain.Zero(masterKey)
		return nil, vaultDomain.ErrDecryptionFailed
	}

	var entries map[string]string
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		vaultDomain.Zero(masterKey)
		vaultDomain.Zero(plaintext)
		return nil, vaultDomain.ErrDecryptionFailed
	}
	vaultDomain.Zero(plaintext)

	return vaultDomain.NewEngine(salt, masterKey, entries), nil
}

// Seal exports the engine's current entries as a sealed representation and
// checksum. Entries are serialized deterministically (JSON with sorted
// keys), a fresh 12-byte nonce is drawn, and the ciphertext is bound to the
// engine's master key. Sealing the same entries twice yields different
// nonces, ciphertexts, and checksums; that freshness is required, not a
// defect.
func (s *SealerService) Seal(engine *vaultDomain.Engine) (string, string, error) {
	plaintext, err := json.Marshal(engine.Entries())
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize entries: %w", err)
	}

	cipher, err := s.aeadManager.CreateCipher(engine.MasterKey, s.algorithm)
	if err != nil {
		vaultDomain.Zero(plaintext)
		return "", "", err
	}

	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
	vaultDomain.Zero(plaintext)
	if err != nil {
		return "", "", fmt.Errorf("failed to seal entries: %w", err)
	}

	sealed := vaultDomain.SealedRepresentation{
		Salt:       base64.StdEncoding.EncodeToString(engine.Salt),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}

	blob, err := sealed.Encode()
	if err != nil {
		return "", "", fmt.Errorf("failed to encode sealed representation: %w", err)
	}

	return blob, vaultDomain.Checksum(blob), nil
}
