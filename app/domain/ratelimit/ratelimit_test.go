package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.Check(ctx, "login", "10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d within the limit", i+1)
		assert.Equal(t, 4-i, result.Remaining)
	}

	result, err := limiter.Check(ctx, "login", "10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryLimiter()
	base := time.Now()
	limiter.now = func() time.Time { return base }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Check(ctx, "translate", "10.0.0.1", 2, time.Minute)
		require.NoError(t, err)
	}

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	result, err := limiter.Check(ctx, "translate", "10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "a new window starts fresh")
	assert.Equal(t, 1, result.Remaining)
}

func TestMemoryLimiterIsolatesRoutesAndClients(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	_, err := limiter.Check(ctx, "login", "10.0.0.1", 1, time.Minute)
	require.NoError(t, err)

	result, err := limiter.Check(ctx, "login", "10.0.0.2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "a second client has its own counter")

	result, err = limiter.Check(ctx, "translate", "10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "a second route has its own counter")
}

func TestMemoryLimiterPrune(t *testing.T) {
	limiter := NewMemoryLimiter()
	base := time.Now()
	limiter.now = func() time.Time { return base }
	ctx := context.Background()

	_, err := limiter.Check(ctx, "login", "10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	_, err = limiter.Check(ctx, "login", "10.0.0.2", 5, time.Hour)
	require.NoError(t, err)

	dropped := limiter.Prune(base.Add(2 * time.Minute))
	assert.Equal(t, 1, dropped, "only the expired window is dropped")
}

func TestRedisLimiterAllowsUpToLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "login", "10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Check(ctx, "login", "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestRedisLimiterWindowExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	_, err := limiter.Check(ctx, "login", "10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	result, err := limiter.Check(ctx, "login", "10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	mr.FastForward(2 * time.Minute)

	result, err = limiter.Check(ctx, "login", "10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "counter expired with the window")
}

func TestRedisLimiterBackendError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisLimiter(client)

	mr.Close()

	_, err := limiter.Check(context.Background(), "login", "10.0.0.1", 3, time.Minute)
	assert.Error(t, err)
}

type erroringLimiter struct{}

func (erroringLimiter) Check(ctx context.Context, route string, clientID string, limit int, window time.Duration) (Result, error) {
	return Result{}, errors.New("backend down")
}

func TestMiddlewareDeniesOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", Middleware(NewMemoryLimiter(), "probe", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddlewareFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", Middleware(erroringLimiter{}, "probe", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
		assert.Equal(t, http.StatusOK, w.Code, "a broken limiter never blocks requests")
	}
}
