package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSBlobKeeper implements BlobKeeper using a gocloud.dev secrets keeper.
//
// Sealed blobs are already encrypted under a password-derived key; the
// keeper adds a second, server-held layer so a leaked registry dump alone
// is not enough to even start guessing passwords offline. Supported key
// URIs: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://.
type KMSBlobKeeper struct {
	keeper *secrets.Keeper
}

// NewKMSBlobKeeper opens a keeper for the configured KMS provider key URI.
func NewKMSBlobKeeper(ctx context.Context, keyURI string) (*KMSBlobKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return &KMSBlobKeeper{keeper: keeper}, nil
}

// Wrap encrypts a sealed blob with the KMS key and encodes the result for
// storage.
func (k *KMSBlobKeeper) Wrap(ctx context.Context, blob string) (string, error) {
	ciphertext, err := k.keeper.Encrypt(ctx, []byte(blob))
	if err != nil {
		return "", fmt.Errorf("failed to wrap blob: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unwrap decodes and decrypts a stored blob back to its sealed form.
func (k *KMSBlobKeeper) Unwrap(ctx context.Context, stored string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("failed to decode stored blob: %w", err)
	}

	blob, err := k.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap blob: %w", err)
	}
	return string(blob), nil
}

// Close releases the underlying keeper.
func (k *KMSBlobKeeper) Close() error {
	return k.keeper.Close()
}

// NoopBlobKeeper implements BlobKeeper as a passthrough for deployments
// without KMS wrapping.
type NoopBlobKeeper struct{}

// NewNoopBlobKeeper creates a passthrough blob keeper.
func NewNoopBlobKeeper() *NoopBlobKeeper {
	return &NoopBlobKeeper{}
}

// Wrap returns the blob unchanged.
func (n *NoopBlobKeeper) Wrap(_ context.Context, blob string) (string, error) {
	return blob, nil
}

// Unwrap returns the stored form unchanged.
func (n *NoopBlobKeeper) Unwrap(_ context.Context, stored string) (string, error) {
	return stored, nil
}

// Close is a no-op.
func (n *NoopBlobKeeper) Close() error {
	return nil
}
