package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChaCha20Poly1305(t *testing.T) {
	t.Run("valid 32-byte key", func(t *testing.T) {
		cipher, err := NewChaCha20Poly1305(testKey(t))
		require.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("short key is rejected", func(t *testing.T) {
		cipher, err := NewChaCha20Poly1305(make([]byte, 16))
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})
}

func TestChaCha20Poly1305Cipher_EncryptDecrypt(t *testing.T) {
	cipher, err := NewChaCha20Poly1305(testKey(t))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte(`{"github.com":"s3cr3t"}`)

		ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)
		assert.Len(t, nonce, 12)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("fresh nonce per encryption", func(t *testing.T) {
		plaintext := []byte("payload")

		first, firstNonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)
		second, secondNonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		assert.NotEqual(t, firstNonce, secondNonce)
		assert.NotEqual(t, first, second)
	})

	t.Run("tampered ciphertext fails authentication", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("payload"), nil)
		require.NoError(t, err)

		ciphertext[0] ^= 0xFF

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("truncated nonce errors instead of panicking", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("payload"), nil)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce[:4], nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("ciphertext is not interchangeable with AES-GCM", func(t *testing.T) {
		key := testKey(t)
		chacha, err := NewChaCha20Poly1305(key)
		require.NoError(t, err)
		aesgcm, err := NewAESGCM(key)
		require.NoError(t, err)

		ciphertext, nonce, err := chacha.Encrypt([]byte("payload"), nil)
		require.NoError(t, err)

		decrypted, err := aesgcm.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})
}
