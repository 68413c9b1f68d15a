// Package cache provides small keyed caches for values that are expensive to
// rebuild within one run, such as decoded source images.
//
// Nothing is written to disk: a cache lives as long as the process.
//
//	images := cache.NewMemory[image.Image]()
//	if img, ok := images.Get(path); ok {
//	    return img
//	}
package cache

// Cache stores values by string key. Implementations are safe for
// concurrent use.
type Cache[V any] interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (V, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value V)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string)

	// Len returns the number of stored entries.
	Len() int

	// Close releases the stored values.
	Close() error
}
