// Package rediscache provides a redis-backed implementation of
// forecast.Cache for multi-instance deployments.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tkhongsap/commodity-currency-research/internal/forecast"
)

// Cache stores outlooks as JSON values with redis-side expiry.
type Cache struct {
	client *redis.Client
}

// New connects to redis and verifies connectivity. addr accepts either
// a redis:// URL or a plain host:port.
func New(ctx context.Context, addr string) (*Cache, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Cache{client: client}, nil
}

// Close releases the client's connections.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get fetches and decodes a cached outlook.
func (c *Cache) Get(ctx context.Context, key string) (*forecast.Outlook, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var o forecast.Outlook
	if err := json.Unmarshal(raw, &o); err != nil {
		// stale or corrupt entry, treat as a miss
		return nil, false, nil
	}
	return &o, true, nil
}

// Set encodes and stores an outlook with the given ttl.
func (c *Cache) Set(ctx context.Context, key string, o *forecast.Outlook, ttl time.Duration) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal outlook: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
