// Package auth owns login, logout and identity checks for the fixed user
// roster, plus the RequireAuth middleware that gates every protected route.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"polydoc.ai/translate-api-gateway/app/domain/session"
	"polydoc.ai/translate-api-gateway/app/domain/vault"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/requests"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/responses"
	"polydoc.ai/translate-api-gateway/app/utils/emailservice"
	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

// ErrInvalidCredentials covers every login failure cause: unknown username,
// wrong password, malformed token. One sentinel, one message — a caller can
// never probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTooManyActiveSessions is returned when the durable store already holds
// the configured maximum of live sessions.
var ErrTooManyActiveSessions = errors.New("too many active users")

// ErrInvalidUpstreamCredential is returned when a non-empty upstream
// credential does not look like a provider API key.
var ErrInvalidUpstreamCredential = errors.New("upstream credential has an unexpected format")

// upstreamCredentialPrefix is the basic shape check for provider API keys.
const upstreamCredentialPrefix = "sk-"

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUsername            = "context_username"
	ContextSessionToken        = "context_session_token"
	ContextEncryptedCredential = "context_encrypted_credential"
)

// LoginResult is what a successful login hands back to the HTTP layer.
type LoginResult struct {
	Token    string
	Username string
	TTL      time.Duration
}

// AuthService verifies roster passwords and issues sessions through the
// active store.
type AuthService struct {
	store session.Store
	vault *vault.Vault
}

func NewAuthService(store session.Store, credentialVault *vault.Vault) *AuthService {
	return &AuthService{
		store: store,
		vault: credentialVault,
	}
}

// roster returns the configured username -> secret map. Read per call so the
// cron-driven env reload takes effect.
func roster() map[string]string {
	users := make(map[string]string)
	for _, pair := range environment_variables.EnvironmentVariables.AUTH_USERS {
		name, secret, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		users[strings.ToLower(strings.TrimSpace(name))] = secret
	}
	return users
}

// verifyPassword supports a bcrypt-hashed roster secret and, as a degraded
// mode for local setups, a plaintext secret compared in constant time. The
// plaintext path is deliberate and stays; it is logged, not hardened away.
func verifyPassword(username string, secret string, password string) bool {
	if strings.HasPrefix(secret, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
	}
	logger.GetLogger().Warnf("identity %s uses a plaintext roster secret (degraded mode)", username)
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}

// Login verifies the password for a roster identity, encrypts the upstream
// credential, enforces the active-session ceiling on durable stores, and
// issues a session. The login notification is dispatched fire-and-forget;
// its outcome never affects the result.
//
// The ceiling check and the session creation are two store round-trips, not
// one atomic operation: concurrent logins can transiently overshoot the cap
// by one. Acceptable for a two-user roster.
func (s *AuthService) Login(ctx context.Context, username string, password string, upstreamCredential string, clientIP string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if upstreamCredential != "" && !strings.HasPrefix(upstreamCredential, upstreamCredentialPrefix) {
		return nil, ErrInvalidUpstreamCredential
	}

	normalized := strings.ToLower(strings.TrimSpace(username))
	secret, known := roster()[normalized]
	if !known || !verifyPassword(normalized, secret, password) {
		return nil, ErrInvalidCredentials
	}

	encryptedCredential := ""
	if upstreamCredential != "" {
		blob, err := s.vault.Encrypt(upstreamCredential)
		if err != nil {
			return nil, err
		}
		encryptedCredential = blob
	}

	maxActive := environment_variables.EnvironmentVariables.MAX_ACTIVE_SESSIONS
	active, err := s.store.CountActive(ctx)
	if err != nil {
		logger.GetLogger().Warnf("active session count unavailable, skipping cap: %v", err)
	} else if maxActive > 0 && active >= maxActive {
		return nil, ErrTooManyActiveSessions
	}

	ttl := time.Duration(environment_variables.EnvironmentVariables.SESSION_TTL_SECONDS) * time.Second
	token, err := s.store.Create(ctx, normalized, encryptedCredential, ttl)
	if err != nil {
		return nil, err
	}

	emailservice.DispatchLoginNotification(normalized, clientIP)

	return &LoginResult{Token: token, Username: normalized, TTL: ttl}, nil
}

// Logout revokes the session. It always succeeds from the caller's
// perspective, even when revocation is a stateless no-op.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if err := s.store.Revoke(ctx, token); err != nil {
		logger.GetLogger().Warnf("session revocation failed: %v", err)
	}
}

// Identify resolves a token to its username.
func (s *AuthService) Identify(ctx context.Context, token string) (string, error) {
	sess, err := s.store.Resolve(ctx, token)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return sess.Username, nil
}

// RequireAuth resolves the bearer token through the active session store and
// attaches the identity to the request context. Any failure short-circuits
// with the same 401.
func (s *AuthService) RequireAuth() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		token, ok := requests.GetTokenFromBearer(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "8f2c4b6e-1a9d-4c3f-b7e2-5d0a9c81f634",
				Error: "invalid credentials",
			})
			return
		}
		sess, err := s.store.Resolve(reqCtx.Request.Context(), token)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "3d7e9f21-6b48-45ca-a0d3-94c2e7b5f018",
				Error: "invalid credentials",
			})
			return
		}
		reqCtx.Set(ContextUsername, sess.Username)
		reqCtx.Set(ContextSessionToken, token)
		reqCtx.Set(ContextEncryptedCredential, sess.EncryptedCredential)
		reqCtx.Next()
	}
}
