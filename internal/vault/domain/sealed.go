package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SealedRepresentation is the exported form of a vault: the salt and nonce
// in the clear, plus the authenticated encryption of the serialized entries
// map. All three fields are standard base64. The checksum over the encoded
// string is carried out-of-band, never inside the structure it covers.
type SealedRepresentation struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
}

// Encode serializes the representation to its canonical string form. Field
// order is fixed by the struct declaration, so the same representation
// always encodes to the same string.
func (s SealedRepresentation) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeSealedRepresentation parses the canonical string form back into its
// three fields. It performs no cryptographic validation.
func DecodeSealedRepresentation(blob string) (*SealedRepresentation, error) {
	var s SealedRepresentation
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Checksum computes the integrity digest of an encoded representation
// string: SHA-256, hex encoded. The digest is structural only; it detects
// transport or storage corruption of the blob, not whether a password is
// correct.
func Checksum(blob string) string {
	sum := sha256.Sum256([]byte(blob))
	return hex.EncodeToString(sum[:])
}
