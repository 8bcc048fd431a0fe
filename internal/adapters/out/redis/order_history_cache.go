// Package redis provides the Redis-backed order history cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// OrderHistoryCache stores serialized order history payloads in Redis with a
// fixed TTL. Entries are invalidated by the command handlers on every order
// mutation, the TTL only bounds staleness when an invalidation is lost.
type OrderHistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOrderHistoryCache creates a cache on top of the given Redis client.
func NewOrderHistoryCache(client *redis.Client, ttl time.Duration) *OrderHistoryCache {
	return &OrderHistoryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached payload for the key, or ports.ErrCacheMiss.
func (c *OrderHistoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return payload, nil
}

// Set stores the payload under the key with the configured TTL.
func (c *OrderHistoryCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Invalidate removes the entry for the key. Deleting a missing key is fine.
func (c *OrderHistoryCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}
