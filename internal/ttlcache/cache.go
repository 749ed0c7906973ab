// Package ttlcache provides a small in-process cache with per-entry expiry.
// The clock is injected so expiry behavior is testable without real delays.
package ttlcache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps keys to values that expire after a fixed TTL
type Cache[K comparable, V any] struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[K]item[V]
}

// New creates a cache whose entries live for ttl. A nil clock defaults to
// time.Now.
func New[K comparable, V any](ttl time.Duration, clock func() time.Time) *Cache[K, V] {
	if clock == nil {
		clock = time.Now
	}
	return &Cache[K, V]{
		ttl:   ttl,
		now:   clock,
		items: make(map[K]item[V]),
	}
}

// Get returns the cached value for key if it has not expired
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok || c.now().After(it.expiresAt) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores value under key with a fresh TTL
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops the entry for key, forcing the next read to repopulate
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// GetOrPopulate returns the cached value for key, calling populate to fill the
// cache on a miss. The lock is not held across populate, so two concurrent
// callers may both populate; the last write wins, which is acceptable for
// idempotent lookups.
func (c *Cache[K, V]) GetOrPopulate(key K, populate func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := populate()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}
