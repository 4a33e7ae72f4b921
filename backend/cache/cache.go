// ABOUTME: Typed in-memory cache with TTL-based expiration
// ABOUTME: Memoizes computed plans keyed by their normalized inputs

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is safe for concurrent use. Expired entries are dropped on read and
// by the cleanup loop started with Run.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	store      map[K]entry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		store: make(map[K]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// NewBounded creates a cache holding at most maxEntries values. When full,
// inserting a new key drops expired entries first, then the entry closest
// to expiry. maxEntries <= 0 means no bound.
func NewBounded[K comparable, V any](ttl time.Duration, maxEntries int) *Cache[K, V] {
	c := New[K, V](ttl)
	c.maxEntries = maxEntries
	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed it
		if cur, ok := c.store[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.store, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.data, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && c.maxEntries > 0 && len(c.store) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.store[key] = entry[V]{data: value, expiresAt: now.Add(ttl)}
}

// evictLocked frees one slot. Caller holds mu.
func (c *Cache[K, V]) evictLocked(now time.Time) {
	if c.sweepLocked(now) > 0 {
		return
	}

	var (
		oldest    K
		oldestExp time.Time
		found     bool
	)
	for k, e := range c.store {
		if !found || e.expiresAt.Before(oldestExp) {
			oldest, oldestExp, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(c.store, oldest)
	}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.store, key)
	c.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet swept.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Sweep removes expired entries and returns how many were dropped.
func (c *Cache[K, V]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(now)
}

func (c *Cache[K, V]) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (c *Cache[K, V]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				slog.Debug("Cache sweep", "removed", n, "remaining", c.Len())
			}
		}
	}
}
