package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatelessStoreCreateResolve(t *testing.T) {
	store := NewStatelessStore([]byte("unit-test-secret"))
	ctx := context.Background()

	token, err := store.Create(ctx, "alice", "nonce.ct.tag", time.Hour)
	require.NoError(t, err)

	sess, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "nonce.ct.tag", sess.EncryptedCredential)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)
}

func TestStatelessStoreRejectsExpiredToken(t *testing.T) {
	store := NewStatelessStore([]byte("unit-test-secret"))
	ctx := context.Background()

	token, err := store.Create(ctx, "alice", "blob", -time.Minute)
	require.NoError(t, err)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStatelessStoreRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	token, err := NewStatelessStore([]byte("secret-one")).Create(ctx, "alice", "blob", time.Hour)
	require.NoError(t, err)

	_, err = NewStatelessStore([]byte("secret-two")).Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Any single-byte mutation of the token, wherever it lands, must fail
// verification.
func TestStatelessStoreRejectsAnyTamperedByte(t *testing.T) {
	store := NewStatelessStore([]byte("unit-test-secret"))
	ctx := context.Background()

	token, err := store.Create(ctx, "alice", "blob", time.Hour)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err := store.Resolve(ctx, string(mutated))
		assert.Error(t, err, "byte %d", i)
	}
}

func TestStatelessStoreRevokeIsNoOp(t *testing.T) {
	store := NewStatelessStore([]byte("unit-test-secret"))
	ctx := context.Background()

	token, err := store.Create(ctx, "alice", "blob", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(ctx, token))

	// Still resolvable: stateless sessions cannot be revoked early.
	_, err = store.Resolve(ctx, token)
	assert.NoError(t, err)

	n, err := store.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
