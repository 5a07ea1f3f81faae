package cache

// The CacheService interface defines the methods any cache implementation must
// provide. Callers always get a definite hit/miss outcome: backend failures degrade
// to misses (reads) or to the in-memory backend (writes), they never propagate.
type CacheService interface {
	// Set serializes value and stores it under the composite key derived from key and
	// params, routed to the backend the data type's policy selects. An existing entry
	// for the same key is replaced. params may be nil.
	Set(key string, value any, dataType string, params any)

	// Get decodes the cached value for key/params into out and reports a hit.
	// An expired entry is removed and reported as a miss.
	Get(key string, params any, out any) bool

	// Has reports whether Get would hit, without decoding the value.
	Has(key string, params any) bool

	// Delete removes the entry from both backends. Deleting a missing key is a no-op.
	Delete(key string, params any)

	// ClearByType removes every entry whose data type matches. Persistent entries
	// that cannot be decoded are treated as matches and removed.
	ClearByType(dataType string)

	// ClearAll removes every entry under the store's namespace from both backends.
	ClearAll()

	// Cleanup removes all expired entries from both backends and returns the count.
	// It is also invoked periodically by the background sweep.
	Cleanup() int

	// Close stops the background sweep and releases both backends.
	Close() error
}
