package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestInitEncryptionKey(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		t.Setenv("TOKEN_ENCRYPTION_KEY_HEX", "")
		assert.Error(t, InitEncryptionKey())
	})

	t.Run("not hex", func(t *testing.T) {
		t.Setenv("TOKEN_ENCRYPTION_KEY_HEX", "zzzz")
		assert.Error(t, InitEncryptionKey())
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Setenv("TOKEN_ENCRYPTION_KEY_HEX", "deadbeef")
		assert.Error(t, InitEncryptionKey())
	})

	t.Run("valid key", func(t *testing.T) {
		t.Setenv("TOKEN_ENCRYPTION_KEY_HEX", testKeyHex)
		assert.NoError(t, InitEncryptionKey())
	})
}

func TestEncryptDecryptToken_RoundTrip(t *testing.T) {
	t.Setenv("TOKEN_ENCRYPTION_KEY_HEX", testKeyHex)
	require.NoError(t, InitEncryptionKey())

	plain := "bearer-token-abc-123"
	encrypted, err := EncryptToken(plain)
	require.NoError(t, err)
	assert.NotEqual(t, plain, encrypted, "шифротекст не должен совпадать с исходным токеном")

	decrypted, err := DecryptToken(encrypted)
	require.NoError(t, err)
	assert.Equal(t, plain, decrypted)

	// Повторное шифрование дает другой шифротекст (случайный nonce).
	encrypted2, err := EncryptToken(plain)
	require.NoError(t, err)
	assert.NotEqual(t, encrypted, encrypted2)
}

func TestDecryptToken_Corrupted(t *testing.T) {
	t.Setenv("TOKEN_ENCRYPTION_KEY_HEX", testKeyHex)
	require.NoError(t, InitEncryptionKey())

	_, err := DecryptToken("не hex")
	assert.Error(t, err)

	_, err = DecryptToken("deadbeef")
	assert.Error(t, err, "слишком короткий шифротекст должен отклоняться")

	encrypted, err := EncryptToken("tok")
	require.NoError(t, err)
	tampered := encrypted[:len(encrypted)-2] + "00"
	_, err = DecryptToken(tampered)
	assert.Error(t, err, "поврежденный шифротекст не должен расшифровываться")
}
