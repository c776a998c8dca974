// Package session persists the (token -> username, encrypted credential)
// binding behind a single Store contract with two interchangeable backends:
// a redis-backed store with TTL records and a live-token registry, and a
// stateless store whose token carries and verifies its own state.
//
// The backend is chosen once at process start; request handlers never branch
// on which one is active.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by Resolve for an absent, expired, malformed
// or tampered token. Callers surface it as a uniform authentication failure.
var ErrSessionNotFound = errors.New("session not found")

// ErrMissingSigningSecret is returned by the store factory when the stateless
// backend is selected but SERVER_SECRET is unset.
var ErrMissingSigningSecret = errors.New("stateless session store requires a server secret")

// Session is the resolved server-side view of a token.
type Session struct {
	Username            string    `json:"username"`
	EncryptedCredential string    `json:"encrypted_credential"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// Store is the session persistence contract.
type Store interface {
	// Create issues a new token for the user. The encrypted credential is
	// stored as-is; this package never sees plaintext credentials.
	Create(ctx context.Context, username string, encryptedCredential string, ttl time.Duration) (string, error)

	// Resolve returns the session bound to the token, or ErrSessionNotFound.
	Resolve(ctx context.Context, token string) (*Session, error)

	// Revoke invalidates the token, best-effort. A stateless token cannot
	// be revoked before its natural expiry; that Revoke is a no-op.
	Revoke(ctx context.Context, token string) error

	// CountActive reports the number of live sessions, best-effort. The
	// stateless backend always reports 0, signaling that no concurrent
	// session cap is enforceable.
	CountActive(ctx context.Context) (int, error)
}
