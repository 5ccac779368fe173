package kvstore

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"kanbanify/internal/providers/redis"
)

const backendRedis = "redis"

// RedisStore keeps each key as a JSON string. Expiry follows the provider's default TTL.
type RedisStore struct {
	provider *redis.RedisProvider
	logger   *zap.SugaredLogger
}

func NewRedisStore(provider *redis.RedisProvider, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		provider: provider,
		logger:   logger.Sugar(),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.provider.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false
	}
	if err != nil {
		s.logger.Errorw("Error reading key", "key", key, "error", err)
		record(backendRedis, "get", false)
		return false
	}
	if err := decodeInto(raw, dest); err != nil {
		s.logger.Warnw("Failed to decode stored value", "key", key, "error", err)
		record(backendRedis, "get", false)
		return false
	}
	record(backendRedis, "get", true)
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value any) bool {
	raw, err := encode(value)
	if err != nil {
		s.logger.Errorw("Failed to encode value", "key", key, "error", err)
		record(backendRedis, "set", false)
		return false
	}
	if err := s.provider.SetWithDefaultTTL(ctx, key, raw, 0).Err(); err != nil {
		s.logger.Errorw("Error writing key", "key", key, "error", err)
		record(backendRedis, "set", false)
		return false
	}
	record(backendRedis, "set", true)
	return true
}

func (s *RedisStore) Remove(ctx context.Context, key string) bool {
	if err := s.provider.Del(ctx, key).Err(); err != nil {
		s.logger.Errorw("Error removing key", "key", key, "error", err)
		record(backendRedis, "remove", false)
		return false
	}
	record(backendRedis, "remove", true)
	return true
}
