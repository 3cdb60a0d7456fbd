// Package prefetch avoids redundant background fetches triggered by
// speculative navigation.
package prefetch

import (
	"sync"
	"time"
)

// DefaultTTL is how long a prefetched key stays fresh.
const DefaultTTL = 30 * time.Second

// Cache is a time-windowed deduplication map. Eviction is purely lazy: an
// entry is only discarded when a read finds it expired. Growth is bounded in
// practice by the small fixed set of prefetchable resource kinds.
type Cache struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// ShouldPrefetch reports whether key needs fetching: true when no entry
// exists or the existing one has aged out (evicting it as a side effect).
func (c *Cache) ShouldPrefetch(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	at, ok := c.entries[key]
	if !ok {
		return true
	}
	if c.now().Sub(at) > c.ttl {
		delete(c.entries, key)
		return true
	}
	return false
}

// MarkPrefetched inserts or refreshes the entry for key.
func (c *Cache) MarkPrefetched(key string) {
	c.mu.Lock()
	c.entries[key] = c.now()
	c.mu.Unlock()
}

// Clear drops every entry; used by tests and forced refreshes.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]time.Time)
	c.mu.Unlock()
}
