package session

import (
	"github.com/redis/go-redis/v9"

	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

// NewStore selects the session backend once at startup: redis when a client
// is configured, otherwise self-verifying stateless tokens signed with the
// server secret.
func NewStore(client *redis.Client) (Store, error) {
	if client != nil {
		logger.GetLogger().Info("session store: redis")
		return NewRedisStore(client), nil
	}
	secret := environment_variables.EnvironmentVariables.SERVER_SECRET
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}
	logger.GetLogger().Info("session store: stateless tokens (revocation and session cap unavailable)")
	return NewStatelessStore([]byte(secret)), nil
}
