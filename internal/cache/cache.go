package cache

import (
	"context"
	"time"
)

// Store is the key-value contract shared by the voice catalog cache and the
// rate-limit counters. Implementations never fail a request: a broken backend
// behaves like a cache miss.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Incr(ctx context.Context, key string, window time.Duration) int64
	Enabled() bool
	Backend() string
}
