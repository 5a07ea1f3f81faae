package cache

import "sync"

// memoryBackend keeps entries in a plain map. It is the fallback backend when
// persistence is unavailable, and the home of short-lived data types.
type memoryBackend struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryBackend() Backend {
	return &memoryBackend{
		entries: make(map[string]*Entry),
	}
}

func (m *memoryBackend) Read(key string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, exists := m.entries[key]
	return entry, exists
}

func (m *memoryBackend) Write(entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry
	return nil
}

func (m *memoryBackend) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *memoryBackend) Sweep(decide func(entry *Entry, corrupt bool) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.entries {
		if decide(entry, false) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func (m *memoryBackend) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*Entry)
}

func (m *memoryBackend) Close() error {
	m.Clear()
	return nil
}
