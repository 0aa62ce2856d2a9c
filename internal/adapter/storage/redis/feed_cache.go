package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const feedKey = "wall:feed"

// FeedCache implements ports.FeedCache using Redis. It holds the
// serialized default wall feed for a short TTL and is invalidated on
// every new post.
type FeedCache struct {
	client *goredis.Client
}

// NewFeedCache creates a Redis-backed wall feed cache.
func NewFeedCache(client *goredis.Client) *FeedCache {
	return &FeedCache{client: client}
}

// Get retrieves the cached feed payload. Returns nil, nil on a miss.
func (c *FeedCache) Get(ctx context.Context) ([]byte, error) {
	val, err := c.client.Get(ctx, feedKey).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis feed get: %w", err)
	}
	return val, nil
}

// Set stores the feed payload with TTL.
func (c *FeedCache) Set(ctx context.Context, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, feedKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis feed set: %w", err)
	}
	return nil
}

// Invalidate drops the cached feed.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, feedKey).Err(); err != nil {
		return fmt.Errorf("redis feed del: %w", err)
	}
	return nil
}
