// Package cache provides a small TTL-based read-through cache used for
// the per-owner business lookup, which tolerates up to the configured
// TTL of staleness.
package cache

import (
	"context"
	"sync"
	"time"
)

// Loader fetches the value for a key on a cache miss.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

// TTL caches loader results for a fixed duration.
// This avoids hitting the database on every scoped lookup.
type TTL[K comparable, V any] struct {
	load    Loader[K, V]
	mu      sync.RWMutex
	entries map[K]*entry[V]
	ttl     time.Duration
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// New wraps a loader with caching. ttl is how long values are kept
// before re-fetching.
func New[K comparable, V any](load Loader[K, V], ttl time.Duration) *TTL[K, V] {
	return &TTL[K, V]{
		load:    load,
		entries: make(map[K]*entry[V]),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, loading it on miss or expiry.
func (c *TTL[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		return e.value, nil
	}

	value, err := c.load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = &entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()

	return value, nil
}

// Invalidate removes a key from the cache.
// Call this whenever the underlying row is mutated.
func (c *TTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (c *TTL[K, V]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[K]*entry[V])
	c.mu.Unlock()
}
