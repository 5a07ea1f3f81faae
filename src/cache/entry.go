package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Entry is one cached record. Payload keeps the value in its serialized form so the
// same representation flows through both backends; an entry is valid iff
// now - StoredAt < TTL.
type Entry struct {
	Key      string          `json:"key"`
	DataType string          `json:"data_type"`
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
	Payload  json.RawMessage `json:"payload"`
}

func (e *Entry) Expired(now time.Time) bool {
	return now.Sub(e.StoredAt) >= e.TTL
}

// CompositeKey derives the storage key from the logical key plus a fingerprint of the
// call parameters, so the same logical key with different params occupies distinct
// slots. The data type is not part of the key; it lives in the entry for bulk
// invalidation.
func CompositeKey(key string, params any) string {
	if params == nil {
		return key
	}
	return key + "#" + fingerprint(params)
}

func fingerprint(params any) string {
	raw, err := json.Marshal(params)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", params))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
