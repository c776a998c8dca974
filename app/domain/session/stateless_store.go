package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StatelessStore encodes the entire session inside the token: an HS256 JWT
// whose claims carry the username, the encrypted upstream credential and the
// expiry. Resolve verifies the signature and expiry locally and never
// consults external state, so the gateway works with no shared store at all.
//
// The trade-off is documented, not hidden: a stateless token cannot be
// revoked before it expires, and no concurrent session cap is enforceable.
type StatelessStore struct {
	secret []byte
}

func NewStatelessStore(secret []byte) *StatelessStore {
	return &StatelessStore{secret: secret}
}

type sessionClaims struct {
	Username            string `json:"username"`
	EncryptedCredential string `json:"credential"`
	jwt.RegisteredClaims
}

func (s *StatelessStore) Create(ctx context.Context, username string, encryptedCredential string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Username:            username,
		EncryptedCredential: encryptedCredential,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(s.secret)
}

func (s *StatelessStore) Resolve(ctx context.Context, tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrSessionNotFound
	}
	return &Session{
		Username:            claims.Username,
		EncryptedCredential: claims.EncryptedCredential,
		ExpiresAt:           claims.ExpiresAt.Time,
	}, nil
}

// Revoke is a no-op: the token remains valid until its expiry.
func (s *StatelessStore) Revoke(ctx context.Context, token string) error {
	return nil
}

// CountActive always reports 0: with no server-side record there is nothing
// to count and no session cap to enforce.
func (s *StatelessStore) CountActive(ctx context.Context) (int, error) {
	return 0, nil
}
