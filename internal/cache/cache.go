// Package cache provides a small in-process LRU used for read-through lookups.
package cache

// Cache defines a generic cache interface
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache
	Get(key K) (V, bool)

	// Set stores a value in the cache
	Set(key K, value V)

	// Delete removes a key from the cache
	Delete(key K)

	// Clear drops every entry
	Clear()

	// CleanExpired drops expired entries and returns how many were removed
	CleanExpired() int

	// Size returns the current number of items in the cache
	Size() int
}
