package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"polydoc.ai/translate-api-gateway/app/domain/session"
	"polydoc.ai/translate-api-gateway/app/domain/vault"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

// withRoster swaps the configured roster and session knobs for one test and
// restores them afterwards.
func withRoster(t *testing.T, users []string, maxActive int) {
	t.Helper()
	saved := environment_variables.EnvironmentVariables
	environment_variables.EnvironmentVariables.AUTH_USERS = users
	environment_variables.EnvironmentVariables.MAX_ACTIVE_SESSIONS = maxActive
	environment_variables.EnvironmentVariables.SESSION_TTL_SECONDS = 3600
	t.Cleanup(func() {
		environment_variables.EnvironmentVariables = saved
	})
}

func newTestService(t *testing.T) (*AuthService, session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewRedisStore(client)
	return NewAuthService(store, vault.NewWithSecret("unit-test-secret")), store
}

func TestLoginPlaintextRoster(t *testing.T) {
	withRoster(t, []string{"alice:s3cret", "bob:hunter2"}, 2)
	service, store := newTestService(t)

	result, err := service.Login(context.Background(), "alice", "s3cret", "", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.NotEmpty(t, result.Token)

	sess, err := store.Resolve(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Empty(t, sess.EncryptedCredential)
}

func TestLoginBcryptRoster(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	withRoster(t, []string{"alice:" + string(hash)}, 2)
	service, _ := newTestService(t)

	_, err = service.Login(context.Background(), "alice", "s3cret", "", "10.0.0.1")
	assert.NoError(t, err)

	_, err = service.Login(context.Background(), "alice", "wrong", "", "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUsernameNormalized(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, _ := newTestService(t)

	result, err := service.Login(context.Background(), "  Alice ", "s3cret", "", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, _ := newTestService(t)
	ctx := context.Background()

	_, unknownUser := service.Login(ctx, "mallory", "s3cret", "", "10.0.0.1")
	_, wrongPassword := service.Login(ctx, "alice", "wrong", "", "10.0.0.1")
	_, emptyPassword := service.Login(ctx, "alice", "", "", "10.0.0.1")
	_, emptyUsername := service.Login(ctx, "", "s3cret", "", "10.0.0.1")

	// Unknown user and wrong password must be indistinguishable.
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, unknownUser, wrongPassword)
	assert.Equal(t, unknownUser, emptyPassword)
	assert.Equal(t, unknownUser, emptyUsername)
}

func TestLoginEncryptsUpstreamCredential(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, store := newTestService(t)

	result, err := service.Login(context.Background(), "alice", "s3cret", "sk-live-key", "10.0.0.1")
	require.NoError(t, err)

	sess, err := store.Resolve(context.Background(), result.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.EncryptedCredential)
	assert.NotContains(t, sess.EncryptedCredential, "sk-live-key", "credential never stored in the clear")

	plaintext, err := vault.NewWithSecret("unit-test-secret").Decrypt(sess.EncryptedCredential)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-key", plaintext)
}

func TestLoginRejectsMalformedUpstreamCredential(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, _ := newTestService(t)

	_, err := service.Login(context.Background(), "alice", "s3cret", "not-a-key", "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidUpstreamCredential)
}

func TestLoginSessionCeiling(t *testing.T) {
	withRoster(t, []string{"alice:s3cret", "bob:hunter2"}, 2)
	service, _ := newTestService(t)
	ctx := context.Background()

	first, err := service.Login(ctx, "alice", "s3cret", "", "10.0.0.1")
	require.NoError(t, err)
	_, err = service.Login(ctx, "bob", "hunter2", "", "10.0.0.2")
	require.NoError(t, err)

	_, err = service.Login(ctx, "alice", "s3cret", "", "10.0.0.1")
	assert.ErrorIs(t, err, ErrTooManyActiveSessions)

	// Logging out frees a slot.
	service.Logout(ctx, first.Token)
	_, err = service.Login(ctx, "alice", "s3cret", "", "10.0.0.1")
	assert.NoError(t, err)
}

func TestIdentify(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, _ := newTestService(t)
	ctx := context.Background()

	result, err := service.Login(ctx, "alice", "s3cret", "", "10.0.0.1")
	require.NoError(t, err)

	username, err := service.Identify(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = service.Identify(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, _ := newTestService(t)
	ctx := context.Background()

	result, err := service.Login(ctx, "alice", "s3cret", "", "10.0.0.1")
	require.NoError(t, err)

	service.Logout(ctx, result.Token)
	_, err = service.Identify(ctx, result.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequireAuthMiddleware(t *testing.T) {
	withRoster(t, []string{"alice:s3cret"}, 2)
	service, _ := newTestService(t)

	result, err := service.Login(context.Background(), "alice", "s3cret", "sk-live-key", "10.0.0.1")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", service.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username":   c.GetString(ContextUsername),
			"credential": c.GetString(ContextEncryptedCredential),
		})
	})

	// Valid bearer token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "sk-live-key")

	// Missing header.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer deadbeef")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
