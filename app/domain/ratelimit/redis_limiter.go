package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter delegates the window to redis: INCR plus an EXPIRE set on the
// first hit of a window. Every instance sharing the store sees the same
// count.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func limiterKey(route string, clientID string) string {
	return "rl:" + route + ":" + clientID
}

func (l *RedisLimiter) Check(ctx context.Context, route string, clientID string, limit int, window time.Duration) (Result, error) {
	key := limiterKey(route, clientID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit backend unavailable: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit backend unavailable: %w", err)
		}
	}

	ttl, err := l.client.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(limit),
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
