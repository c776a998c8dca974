// Package ratelimit counts requests per route and client inside a fixed
// window. A redis backend keeps the count consistent across instances; the
// in-memory fallback is correct only for a single process, which is a
// documented limitation of running without a shared store.
//
// Enforcement always fails open: a limiter that cannot answer never blocks
// the primary function.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"polydoc.ai/translate-api-gateway/app/utils/logger"
)

// Result reports one limiter decision plus the quota metadata the response
// carries regardless of the outcome.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is the window-counter contract shared by both backends.
type Limiter interface {
	Check(ctx context.Context, route string, clientID string, limit int, window time.Duration) (Result, error)
}

// NewLimiter picks the backend: redis when a client is configured, otherwise
// the per-process fallback.
func NewLimiter(client *redis.Client) Limiter {
	if client != nil {
		logger.GetLogger().Info("rate limiter: redis")
		return NewRedisLimiter(client)
	}
	logger.GetLogger().Info("rate limiter: in-memory fallback (single instance only)")
	return NewMemoryLimiter()
}
