package cache

import "sync"

// Memory is an in-process cache guarded by a read/write mutex.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewMemory creates an empty in-memory cache.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{entries: make(map[string]V)}
}

// Get retrieves a value from the cache.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value in the cache.
func (c *Memory[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
}

// Delete removes a value from the cache.
func (c *Memory[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Memory[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *Memory[V]) Close() error {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
	return nil
}

// Ensure Memory implements Cache.
var _ Cache[int] = (*Memory[int])(nil)
