package vault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	v := NewWithSecret("unit-test-secret")
	for _, plaintext := range []string{"sk-abc123", "x", "a much longer credential with spaces and ünïcode"} {
		blob, err := v.Encrypt(plaintext)
		require.NoError(t, err)
		assert.Len(t, strings.Split(blob, "."), 3)

		got, err := v.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	v := NewWithSecret("unit-test-secret")
	first, err := v.Encrypt("sk-abc123")
	require.NoError(t, err)
	second, err := v.Encrypt("sk-abc123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsTampering(t *testing.T) {
	v := NewWithSecret("unit-test-secret")
	blob, err := v.Encrypt("sk-abc123")
	require.NoError(t, err)

	parts := strings.Split(blob, ".")
	require.Len(t, parts, 3)

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	for i, name := range []string{"nonce", "ciphertext", "tag"} {
		mutated := make([]string, 3)
		copy(mutated, parts)
		mutated[i] = flip(mutated[i])
		_, err := v.Decrypt(strings.Join(mutated, "."))
		assert.Error(t, err, "tampered %s must not decrypt", name)
	}
}

func TestDecryptRejectsWrongSecret(t *testing.T) {
	blob, err := NewWithSecret("secret-one").Encrypt("sk-abc123")
	require.NoError(t, err)

	_, err = NewWithSecret("secret-two").Decrypt(blob)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecryptRejectsWrongShape(t *testing.T) {
	v := NewWithSecret("unit-test-secret")
	for _, blob := range []string{"", "onlyone", "two.parts", "a.b.c.d", "!!!.@@@.###"} {
		_, err := v.Decrypt(blob)
		assert.ErrorIs(t, err, ErrMalformedCiphertext, "blob %q", blob)
	}
}

func TestMissingSecret(t *testing.T) {
	v := NewWithSecret("")
	_, err := v.Encrypt("sk-abc123")
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = v.Decrypt("a.b.c")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
