package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Memo caches values derived from document content, keyed by a hash of
// that content.
type Memo[T any] struct {
	mu      sync.Mutex
	entries map[uint64]memoEntry[T]
	ttl     time.Duration

	// Now returns the current time. Tests replace it to control expiry.
	Now func() time.Time
}

type memoEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// NewMemo creates a Memo retaining values for ttl.
func NewMemo[T any](ttl time.Duration) *Memo[T] {
	return &Memo[T]{
		entries: make(map[uint64]memoEntry[T]),
		ttl:     ttl,
		Now:     time.Now,
	}
}

// ContentKey hashes document content.
func ContentKey(content string) uint64 {
	return xxhash.Sum64String(content)
}

// Get returns the live value stored for content.
func (m *Memo[T]) Get(content string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ContentKey(content)
	e, ok := m.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !m.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores v for content.
func (m *Memo[T]) Put(content string, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[ContentKey(content)] = memoEntry[T]{
		value:     v,
		expiresAt: m.Now().Add(m.ttl),
	}
}
