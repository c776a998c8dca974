// Package vault encrypts the user-supplied upstream API credential with a
// key derived from the server secret. The plaintext credential exists only
// transiently while a request decrypts it for the provider call; it is never
// stored, cached or logged.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

// ErrMissingSecret is returned when SERVER_SECRET is unset. Fatal for any
// encryption or signing operation.
var ErrMissingSecret = errors.New("server secret is not configured")

// ErrMalformedCiphertext is returned when a blob does not have the expected
// nonce.ciphertext.tag shape.
var ErrMalformedCiphertext = errors.New("malformed encrypted credential")

// ErrDecryptFailed is returned when authentication of the blob fails. No
// partial plaintext is ever returned.
var ErrDecryptFailed = errors.New("credential decryption failed")

const gcmTagSize = 16

// Vault performs authenticated symmetric encryption of upstream credentials.
type Vault struct {
	secret func() string
}

// New returns a Vault keyed by the SERVER_SECRET environment variable. The
// secret is read per call so a cron-driven env reload takes effect without a
// restart.
func New() *Vault {
	return &Vault{secret: func() string {
		return environment_variables.EnvironmentVariables.SERVER_SECRET
	}}
}

// NewWithSecret returns a Vault with a fixed secret. Used by tests.
func NewWithSecret(secret string) *Vault {
	return &Vault{secret: func() string { return secret }}
}

func (v *Vault) aead() (cipher.AEAD, error) {
	secret := v.secret()
	if secret == "" {
		return nil, ErrMissingSecret
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce and
// returns base64url(nonce).base64url(ciphertext).base64url(tag).
func (v *Vault) Encrypt(plaintext string) (string, error) {
	aead, err := v.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-gcmTagSize]
	tag := sealed[len(sealed)-gcmTagSize:]
	enc := base64.RawURLEncoding
	return enc.EncodeToString(nonce) + "." + enc.EncodeToString(ciphertext) + "." + enc.EncodeToString(tag), nil
}

// Decrypt reverses Encrypt. Any tampering with the nonce, ciphertext or tag,
// or a different server secret, fails with ErrDecryptFailed.
func (v *Vault) Decrypt(blob string) (string, error) {
	aead, err := v.aead()
	if err != nil {
		return "", err
	}
	parts := strings.Split(blob, ".")
	if len(parts) != 3 {
		return "", ErrMalformedCiphertext
	}
	enc := base64.RawURLEncoding
	nonce, err := enc.DecodeString(parts[0])
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	ciphertext, err := enc.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	tag, err := enc.DecodeString(parts[2])
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	if len(nonce) != aead.NonceSize() || len(tag) != gcmTagSize {
		return "", ErrMalformedCiphertext
	}
	plaintext, err := aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
