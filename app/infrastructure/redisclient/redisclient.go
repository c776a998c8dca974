// Package redisclient builds the optional shared-store connection. With no
// REDIS_URL configured the gateway runs storeless: stateless session tokens
// and the in-memory rate limiter fallback.
package redisclient

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

// NewClient returns a connected client, or nil when no redis is configured.
// A configured but unreachable redis still returns the client: the stores
// degrade per-operation rather than refusing to start.
func NewClient() *redis.Client {
	envs := environment_variables.EnvironmentVariables
	if envs.REDIS_URL == "" {
		return nil
	}

	opts, err := redis.ParseURL(envs.REDIS_URL)
	if err != nil {
		logger.GetLogger().Errorf("failed to parse REDIS_URL: %v", err)
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if envs.REDIS_PASSWORD != "" {
		opts.Password = envs.REDIS_PASSWORD
	}
	if envs.REDIS_DB != "" {
		if db, err := strconv.Atoi(envs.REDIS_DB); err == nil {
			opts.DB = db
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().Errorf("failed to connect to redis: %v", err)
	} else {
		logger.GetLogger().Info("connected to redis")
	}
	return client
}
