package rates

import (
	"sync"
	"time"
)

// cacheEntry holds a rate table with its expiration time.
type cacheEntry struct {
	expiry time.Time
	rates  map[string]float64
}

// Cache stores rate tables keyed by base currency with TTL-based expiration.
// It has no package-level instance; construct one and pass it by reference to
// every consumer that should share it.
type Cache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewCache creates a rate cache with the given TTL and starts a background
// cleanup goroutine. Call Close to stop it.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 1 * time.Hour // Default TTL
	}

	cache := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	// Start cleanup goroutine
	go cache.cleanup()

	return cache
}

// get retrieves a rate table from the cache if it exists and hasn't expired.
func (c *Cache) get(base string) (map[string]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[base]
	if !exists {
		return nil, false
	}

	// Check if expired
	if time.Now().After(entry.expiry) {
		return nil, false
	}

	return entry.rates, true
}

// set stores a rate table in the cache with the configured TTL.
func (c *Cache) set(base string, rates map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[base] = cacheEntry{
		rates:  rates,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

// removeExpired removes all expired entries from the cache.
func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for base, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, base)
		}
	}
}

// size returns the number of entries in the cache.
func (c *Cache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	close(c.stopCh)
}
