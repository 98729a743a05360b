package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisStore struct {
	client  *redis.Client
	enabled bool
	logger  *zap.Logger
}

// NewRedisStore connects to the Redis instance named by url. When the URL is
// malformed or the server is unreachable the store starts disabled and every
// read behaves like a miss, so callers keep working without a cache.
func NewRedisStore(url string, logger *zap.Logger) *RedisStore {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis url, caching disabled", zap.Error(err))
		return &RedisStore{logger: logger}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		return &RedisStore{logger: logger}
	}

	logger.Info("redis cache enabled")
	return &RedisStore{client: client, enabled: true, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	if !s.enabled {
		return "", false
	}
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		s.logger.Error("cache get error", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if !s.enabled {
		return
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Error("cache set error", zap.String("key", key), zap.Error(err))
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if !s.enabled {
		return
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("cache delete error", zap.String("key", key), zap.Error(err))
	}
}

// Incr bumps a fixed-window counter. The window TTL is only attached when the
// key is created, so the counter resets once per window.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) int64 {
	if !s.enabled {
		return 0
	}
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Error("cache incr error", zap.String("key", key), zap.Error(err))
		return 0
	}
	if n == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			s.logger.Error("cache expire error", zap.String("key", key), zap.Error(err))
		}
	}
	return n
}

func (s *RedisStore) Enabled() bool {
	return s.enabled
}

func (s *RedisStore) Backend() string {
	return "redis"
}
