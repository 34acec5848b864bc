package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SettlementCache implements ports.IdempotencyCache: it keeps the result of
// a completed deposit or bet so a retried request replays it.
type SettlementCache struct {
	client goredis.Cmdable
	prefix string
}

// NewSettlementCache creates a Redis-backed settlement result cache.
// Keys are stored under the "settlement:" prefix.
func NewSettlementCache(client goredis.Cmdable) *SettlementCache {
	return &SettlementCache{client: client, prefix: "settlement:"}
}

// Get returns the cached result JSON, or nil, nil when absent.
func (c *SettlementCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis settlement get: %w", err)
	}
	return val, nil
}

// Set stores a result with ttl. An existing entry is kept: the first
// completed settlement wins.
func (c *SettlementCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.SetNX(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis settlement set: %w", err)
	}
	return nil
}
