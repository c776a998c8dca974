package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"polydoc.ai/translate-api-gateway/app/utils/logger"
)

const (
	sessionKeyPrefix = "session:"
	activeSetKey     = "sessions:active"
)

// RedisStore keeps one TTL'd record per session plus a set of live tokens so
// CountActive never has to scan the keyspace. The set is pruned lazily: a
// member whose record the TTL already reaped is dropped on the next count.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *RedisStore) Create(ctx context.Context, username string, encryptedCredential string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	record := Session{
		Username:            username,
		EncryptedCredential: encryptedCredential,
		ExpiresAt:           time.Now().Add(ttl),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, sessionKey(token), payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("session write failed: %w", err)
	}
	if err := s.client.SAdd(ctx, activeSetKey, token).Err(); err != nil {
		// The record exists and resolves; only the active count is off
		// until the next lazy prune.
		logger.GetLogger().Warnf("session registry add failed: %v", err)
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session read failed: %w", err)
	}
	var record Session
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, ErrSessionNotFound
	}
	return &record, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}
	return s.client.SRem(ctx, activeSetKey, token).Err()
}

func (s *RedisStore) CountActive(ctx context.Context) (int, error) {
	tokens, err := s.client.SMembers(ctx, activeSetKey).Result()
	if err != nil {
		return 0, err
	}
	live := 0
	for _, token := range tokens {
		exists, err := s.client.Exists(ctx, sessionKey(token)).Result()
		if err != nil {
			return 0, err
		}
		if exists > 0 {
			live++
			continue
		}
		if err := s.client.SRem(ctx, activeSetKey, token).Err(); err != nil {
			logger.GetLogger().Warnf("session registry prune failed: %v", err)
		}
	}
	return live, nil
}
