package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sahatak/telecare-agent/src/common/logger"
)

const DEFAULT_SWEEP_INTERVAL = time.Minute

type store struct {
	policies   *PolicyTable
	memory     Backend
	persistent Backend
	now        func() time.Time

	sweepInterval time.Duration
	stopSweep     chan struct{}
	sweepDone     sync.WaitGroup
	closeOnce     sync.Once
}

type StoreOption func(*store)

// WithClock overrides the time source, used by tests to force expiry.
func WithClock(now func() time.Time) StoreOption {
	return func(s *store) { s.now = now }
}

func WithSweepInterval(interval time.Duration) StoreOption {
	return func(s *store) { s.sweepInterval = interval }
}

// NewCacheService builds a store over the given backends and starts the background
// expiry sweep. persistent may be nil, in which case everything lives in memory.
func NewCacheService(policies *PolicyTable, memory, persistent Backend, opts ...StoreOption) CacheService {
	s := &store{
		policies:      policies,
		memory:        memory,
		persistent:    persistent,
		now:           time.Now,
		sweepInterval: DEFAULT_SWEEP_INTERVAL,
		stopSweep:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sweepDone.Add(1)
	go s.sweepLoop()
	return s
}

func (s *store) Set(key string, value any, dataType string, params any) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Warnf("cache set skipped for %s: unserializable value: %v", key, err)
		return
	}

	composite := CompositeKey(key, params)
	policy := s.policies.Resolve(dataType)
	entry := &Entry{
		Key:      composite,
		DataType: dataType,
		StoredAt: s.now(),
		TTL:      policy.TTL,
		Payload:  payload,
	}

	// Replace, not shadow: the entry must not survive in the backend the policy
	// does not select.
	s.memory.Remove(composite)
	if s.persistent != nil {
		s.persistent.Remove(composite)
	}

	backend := s.memory
	if policy.Backend == BackendPersistent && s.persistent != nil {
		backend = s.persistent
	}
	err = backend.Write(entry)
	if err != nil && backend != s.memory {
		logger.GetLogger().Warnf("persistent cache write failed for %s, degrading to memory: %v", key, err)
		err = s.memory.Write(entry)
	}
	if err != nil {
		logger.GetLogger().Warnf("cache write dropped for %s: %v", key, err)
	}
}

func (s *store) Get(key string, params any, out any) bool {
	entry, exists := s.lookup(CompositeKey(key, params))
	if !exists {
		return false
	}
	if err := json.Unmarshal(entry.Payload, out); err != nil {
		logger.GetLogger().Debugf("cache entry for %s does not decode, dropping: %v", key, err)
		s.Delete(key, params)
		return false
	}
	return true
}

func (s *store) Has(key string, params any) bool {
	_, exists := s.lookup(CompositeKey(key, params))
	return exists
}

func (s *store) Delete(key string, params any) {
	composite := CompositeKey(key, params)
	s.memory.Remove(composite)
	if s.persistent != nil {
		s.persistent.Remove(composite)
	}
}

func (s *store) ClearByType(dataType string) {
	match := func(entry *Entry, corrupt bool) bool {
		return corrupt || entry.DataType == dataType
	}
	removed := s.memory.Sweep(match)
	if s.persistent != nil {
		removed += s.persistent.Sweep(match)
	}
	logger.GetLogger().Debugf("action: cache_clear_type | type: %s | removed: %d", dataType, removed)
}

func (s *store) ClearAll() {
	s.memory.Clear()
	if s.persistent != nil {
		s.persistent.Clear()
	}
}

func (s *store) Cleanup() int {
	now := s.now()
	expired := func(entry *Entry, corrupt bool) bool {
		return corrupt || entry.Expired(now)
	}
	removed := s.memory.Sweep(expired)
	if s.persistent != nil {
		removed += s.persistent.Sweep(expired)
	}
	logger.GetLogger().Debugf("action: cache_cleanup | result: success | removed: %d", removed)
	return removed
}

func (s *store) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopSweep)
	})
	s.sweepDone.Wait()

	if s.persistent != nil {
		if err := s.persistent.Close(); err != nil {
			return err
		}
	}
	return s.memory.Close()
}

// lookup finds a live entry for the composite key, checking the persistent backend
// first. Expired entries are purged on access.
func (s *store) lookup(composite string) (*Entry, bool) {
	backends := []Backend{}
	if s.persistent != nil {
		backends = append(backends, s.persistent)
	}
	backends = append(backends, s.memory)

	for _, backend := range backends {
		entry, exists := backend.Read(composite)
		if !exists {
			continue
		}
		if entry.Expired(s.now()) {
			s.memory.Remove(composite)
			if s.persistent != nil {
				s.persistent.Remove(composite)
			}
			return nil, false
		}
		return entry, true
	}
	return nil, false
}

func (s *store) sweepLoop() {
	defer s.sweepDone.Done()
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopSweep:
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
