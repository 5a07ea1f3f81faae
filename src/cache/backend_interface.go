package cache

// Backend is one physical store for cache entries. Implementations are best-effort:
// a failed read is a miss, a failed write is logged and dropped, and neither is
// surfaced to the business operation that triggered it.
type Backend interface {
	// Read returns the entry for the composite key, or false when absent or unreadable.
	Read(key string) (*Entry, bool)

	// Write stores the entry, replacing any previous entry for its key.
	Write(entry *Entry) error

	// Remove deletes the entry for the key. Removing a missing key is not an error.
	Remove(key string)

	// Sweep visits every entry and removes those for which decide returns true.
	// Entries that cannot be decoded are reported with corrupt=true and a nil entry.
	// It returns the number of entries removed.
	Sweep(decide func(entry *Entry, corrupt bool) bool) int

	// Clear removes every entry under the backend's namespace.
	Clear()

	Close() error
}
