package cache

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/singleflight"
)

// Memoizer wraps remote fetches so repeated calls inside the TTL window are served
// from the cache, and concurrent calls for the same key collapse into one in-flight
// request.
type Memoizer struct {
	cache CacheService
	group singleflight.Group
}

func NewMemoizer(cache CacheService) *Memoizer {
	return &Memoizer{cache: cache}
}

// Fetch returns the cached value for key/params when present and fresh, otherwise
// invokes fetch. A successful fetch is stored exactly once under the same
// key/dataType/params; a failed fetch propagates to the caller and is never cached.
// forceRefresh bypasses the cache read but still refreshes the entry on success.
func Fetch[T any](ctx context.Context, m *Memoizer, key, dataType string, params any, forceRefresh bool, fetch func(context.Context) (T, error)) (T, error) {
	if !forceRefresh {
		var cached T
		if m.cache.Get(key, params, &cached) {
			return cached, nil
		}
	}

	result, err, _ := m.group.Do(CompositeKey(key, params), func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return value, err
		}
		m.cache.Set(key, value, dataType, params)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return toTyped[T](result)
}

// toTyped recovers the concrete type from singleflight's any. Shared results from a
// duplicate-suppressed call are the same value the winning fetch produced, so the
// assertion only falls back to re-encoding when the flight returned a compatible but
// distinct representation.
func toTyped[T any](value any) (T, error) {
	if typed, ok := value.(T); ok {
		return typed, nil
	}
	var out T
	raw, err := json.Marshal(value)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
