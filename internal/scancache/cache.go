// Package scancache provides the bounded, insertion-ordered cache of
// scan results kept by one session. It is process-local, never
// persisted, and discarded with the session.
package scancache

import (
	"sync"

	"github.com/baitblock/baitblock/internal/core"
)

// DefaultCapacity matches the historical per-session bound.
const DefaultCapacity = 50

// keyPrefixLen is how much of the raw text keys a result when the
// message has no id. Two long texts sharing a 100-character prefix
// alias to the same entry; kept deliberately for compatibility.
const keyPrefixLen = 100

// Cache is a FIFO-evicting map from scan key to result. Construct one
// per session and pass it by reference; there is no global instance.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*core.ScanResult
	order    []string
}

// New creates a cache with the given capacity; zero or negative uses
// DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*core.ScanResult, capacity),
	}
}

// Key derives the cache key for a message: the message id when one
// exists, else the first 100 characters of the raw text.
func Key(msg *core.Message) string {
	if msg.MessageID != "" {
		return msg.MessageID
	}
	runes := []rune(msg.Text)
	if len(runes) > keyPrefixLen {
		runes = runes[:keyPrefixLen]
	}
	return string(runes)
}

// Get returns the cached result for a key, if present. The pointer is
// shared with every later hit for the same key; callers must treat the
// result as read-only.
func (c *Cache) Get(key string) (*core.ScanResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[key]
	return result, ok
}

// Put stores a result. Re-putting an existing key updates the value
// without changing its insertion position. When the cache grows past
// capacity, the single oldest entry is evicted.
func (c *Cache) Put(key string, result *core.ScanResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = result
		return
	}

	c.entries[key] = result
	c.order = append(c.order, key)

	if len(c.entries) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
