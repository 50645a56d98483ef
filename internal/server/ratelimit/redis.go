package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces limiter keys.
const DefaultRedisPrefix = "ai-stack:ratelimit:"

// Redis is a fixed-window limiter shared by every server using the same
// Redis instance.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedis creates a Redis limiter allowing limit requests per window.
func NewRedis(client *redis.Client, limit int, window time.Duration) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}
	if window <= 0 {
		return nil, errors.New("window must be greater than 0")
	}
	return &Redis{client: client, limit: limit, window: window, prefix: DefaultRedisPrefix}, nil
}

// Allow counts the request in the current window.
func (r *Redis) Allow(ctx context.Context, key string) (Info, error) {
	k := r.prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return Info{}, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	remainingTTL := ttl.Val()
	if remainingTTL < 0 {
		// First hit of a new window.
		if err := r.client.PExpire(ctx, k, r.window).Err(); err != nil {
			return Info{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		remainingTTL = r.window
	}

	count := int(incr.Val())
	return Info{
		Limit:     r.limit,
		Remaining: max(r.limit-count, 0),
		ResetAt:   time.Now().Add(remainingTTL),
		Allowed:   count <= r.limit,
	}, nil
}

// Reset clears the counter of key.
func (r *Redis) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
