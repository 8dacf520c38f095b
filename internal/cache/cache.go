// Package cache provides a small thread-safe TTL cache used to respect
// upstream provider rate limits. The clock is injected so expiry is
// testable.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL is a key-value cache whose entries expire after a fixed duration.
type TTL struct {
	ttl   time.Duration
	clock clockwork.Clock
	mu    sync.RWMutex
	store map[string]entry
}

// New creates a TTL cache with the given expiry duration.
func New(ttl time.Duration) *TTL {
	return NewWithClock(ttl, clockwork.NewRealClock())
}

// NewWithClock creates a TTL cache with an injected clock.
func NewWithClock(ttl time.Duration, clock clockwork.Clock) *TTL {
	return &TTL{
		ttl:   ttl,
		clock: clock,
		store: make(map[string]entry),
	}
}

// Get returns the cached value for key, or (nil, false) when absent or
// expired. Expired entries are dropped on access.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.clock.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key with the cache's TTL.
func (c *TTL) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = entry{value: value, expiresAt: c.clock.Now().Add(c.ttl)}
}

// Len returns the number of entries including any not yet evicted.
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Invalidate clears the cache.
func (c *TTL) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]entry)
}
