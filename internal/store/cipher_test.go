package store_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sellerlink/internal/store"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewTokenCipher_KeyLength(t *testing.T) {
	t.Parallel()

	_, err := store.NewTokenCipher("short")
	require.ErrorIs(t, err, store.ErrInvalidEncryptionKey)

	c, err := store.NewTokenCipher(testKey)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestTokenCipher_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	c, err := store.NewTokenCipher(testKey)
	require.NoError(t, err)

	sealed, err := c.Encrypt("Atzr|refresh-token")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "enc:v1:"))
	assert.NotContains(t, sealed, "refresh-token")

	again, err := c.Encrypt("Atzr|refresh-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per encryption")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "Atzr|refresh-token", plain)
}

func TestTokenCipher_PlaintextPassthrough(t *testing.T) {
	t.Parallel()

	c, err := store.NewTokenCipher(testKey)
	require.NoError(t, err)

	plain, err := c.Decrypt("Atza|legacy-plaintext")
	require.NoError(t, err)
	assert.Equal(t, "Atza|legacy-plaintext", plain)

	var none *store.TokenCipher
	sealed, err := none.Encrypt("Atza|token")
	require.NoError(t, err)
	assert.Equal(t, "Atza|token", sealed)
}

func TestTokenCipher_Tampered(t *testing.T) {
	t.Parallel()

	c, err := store.NewTokenCipher(testKey)
	require.NoError(t, err)

	sealed, err := c.Encrypt("Atzr|refresh-token")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cipher *store.TokenCipher
		stored string
	}{
		{name: "wrong key", cipher: mustCipher(t, "fedcba9876543210fedcba9876543210"), stored: sealed},
		{name: "bad base64", cipher: c, stored: "enc:v1:!!!"},
		{name: "truncated", cipher: c, stored: "enc:v1:AAAA"},
		{name: "no key configured", cipher: nil, stored: sealed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.cipher.Decrypt(tt.stored)
			require.ErrorIs(t, err, store.ErrInvalidCiphertext)
		})
	}
}

func mustCipher(t *testing.T, key string) *store.TokenCipher {
	t.Helper()
	c, err := store.NewTokenCipher(key)
	require.NoError(t, err)
	return c
}
