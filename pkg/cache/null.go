package cache

// Null is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type Null[V any] struct{}

// NewNull creates a null cache.
func NewNull[V any]() Cache[V] {
	return Null[V]{}
}

// Get always returns a cache miss.
func (Null[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

// Set does nothing.
func (Null[V]) Set(string, V) {}

// Delete does nothing.
func (Null[V]) Delete(string) {}

// Len is always zero.
func (Null[V]) Len() int { return 0 }

// Close does nothing.
func (Null[V]) Close() error { return nil }

// Ensure Null implements Cache.
var _ Cache[int] = Null[int]{}
