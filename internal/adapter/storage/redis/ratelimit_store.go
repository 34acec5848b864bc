package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "casino:rl:"

// RateLimitResult is the verdict for one counted request.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // unix seconds at which the current window closes
}

// RetryAfter is how long a rejected caller should wait, never less than a second.
func (r *RateLimitResult) RetryAfter(now time.Time) time.Duration {
	wait := time.Unix(r.ResetAt, 0).Sub(now)
	if wait < time.Second {
		return time.Second
	}
	return wait
}

// RateLimitStore counts requests per key in fixed windows aligned to the
// unix epoch.
type RateLimitStore struct {
	client goredis.Cmdable
	now    func() time.Time
}

func NewRateLimitStore(client goredis.Cmdable) *RateLimitStore {
	return &RateLimitStore{client: client, now: time.Now}
}

// Allow records one hit on key. The counter and its expiry are set in a
// single MULTI so an orphaned counter cannot block the next window.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	span := int64(window / time.Second)
	if span < 1 {
		span = 1
	}
	now := s.now().Unix()
	bucket := now / span
	windowEnd := (bucket + 1) * span
	counterKey := fmt.Sprintf("%s%s:%d", rateLimitPrefix, key, bucket)

	var hits *goredis.IntCmd
	if _, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		hits = p.Incr(ctx, counterKey)
		p.Expire(ctx, counterKey, time.Duration(windowEnd-now+1)*time.Second)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("count rate limit hit %s: %w", key, err)
	}

	count := hits.Val()
	return &RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   windowEnd,
	}, nil
}
