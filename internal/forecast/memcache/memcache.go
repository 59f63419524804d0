// Package memcache provides an in-process TTL implementation of
// forecast.Cache.
package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/tkhongsap/commodity-currency-research/internal/forecast"
)

type entry struct {
	outlook forecast.Outlook
	expires time.Time
}

// Cache is a mutex-guarded expiring map. Expired entries are dropped
// lazily on read and swept on write.
type Cache struct {
	mu    sync.Mutex
	items map[string]entry
}

// New initializes an empty cache.
func New() *Cache {
	return &Cache{items: make(map[string]entry)}
}

// Get returns a copy of the cached outlook if present and unexpired.
func (c *Cache) Get(_ context.Context, key string) (*forecast.Outlook, bool, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if now.After(e.expires) {
		delete(c.items, key)
		return nil, false, nil
	}
	cp := e.outlook
	return &cp, true, nil
}

// Set stores a copy of the outlook with the given ttl.
func (c *Cache) Set(_ context.Context, key string, o *forecast.Outlook, ttl time.Duration) error {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{outlook: *o, expires: now.Add(ttl)}

	for k, e := range c.items {
		if now.After(e.expires) {
			delete(c.items, k)
		}
	}
	return nil
}
