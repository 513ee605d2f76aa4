// Package cache provides in-memory, time-boxed caches for coordinate
// lookups and extraction results.
package cache

import (
	"sync"
	"time"

	"github.com/fwojciec/nerview"
)

var _ nerview.CoordinateCache = (*TTLCache)(nil)

// TTLCache keeps lookup outcomes for a fixed duration.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]nerview.CacheEntry
	ttl     time.Duration

	// Now returns the current time. Tests replace it to control expiry.
	Now func() time.Time
}

// NewTTLCache creates a cache retaining entries for ttl.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		entries: make(map[string]nerview.CacheEntry),
		ttl:     ttl,
		Now:     time.Now,
	}
}

// Get returns the entry for qid if it has not expired.
func (c *TTLCache) Get(qid string) (nerview.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[qid]
	if !ok {
		return nerview.CacheEntry{}, false
	}
	if !c.Now().Before(e.ExpiresAt) {
		delete(c.entries, qid)
		return nerview.CacheEntry{}, false
	}
	return e, true
}

// Put stores place for qid. A nil place records a negative result.
func (c *TTLCache) Put(qid string, place *nerview.Place) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[qid] = nerview.CacheEntry{
		Place:     place,
		ExpiresAt: c.Now().Add(c.ttl),
	}
}

// Expire drops the entry for qid.
func (c *TTLCache) Expire(qid string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, qid)
}

// Purge removes all expired entries and returns how many were dropped.
func (c *TTLCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	n := 0
	for qid, e := range c.entries {
		if !now.Before(e.ExpiresAt) {
			delete(c.entries, qid)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, including expired ones not
// yet purged.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
