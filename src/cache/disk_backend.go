package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sahatak/telecare-agent/src/common/logger"
)

const CACHE_EXTENSION = ".cache"
const ENVELOPE_VERSION = 1

// diskEnvelope is the on-disk representation of an Entry, one file per entry.
type diskEnvelope struct {
	Version int   `json:"version"`
	Entry   Entry `json:"entry"`
}

// diskBackend persists entries as JSON files under a namespace directory. All I/O is
// best-effort: failures are logged and reported as misses, never as errors to the
// store's callers.
type diskBackend struct {
	mu  sync.Mutex
	dir string
}

func NewDiskBackend(dir string) Backend {
	return &diskBackend{dir: dir}
}

func (d *diskBackend) Read(key string) (*Entry, bool) {
	raw, err := os.ReadFile(d.filePath(key))
	if err != nil {
		return nil, false
	}
	var env diskEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != ENVELOPE_VERSION {
		logger.GetLogger().Debugf("discarding unreadable cache file for key %s", key)
		d.Remove(key)
		return nil, false
	}
	return &env.Entry, true
}

func (d *diskBackend) Write(entry *Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}

	content, err := json.Marshal(diskEnvelope{Version: ENVELOPE_VERSION, Entry: *entry})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, "entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, d.filePath(entry.Key)); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (d *diskBackend) Remove(key string) {
	if err := os.Remove(d.filePath(key)); err != nil && !os.IsNotExist(err) {
		logger.GetLogger().Debugf("failed to remove cache file for key %s: %v", key, err)
	}
}

func (d *diskBackend) Sweep(decide func(entry *Entry, corrupt bool) bool) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(d.dir, "*"+CACHE_EXTENSION))
	if err != nil {
		logger.GetLogger().Warnf("failed to list cache files: %v", err)
		return 0
	}

	removed := 0
	for _, file := range files {
		raw, err := os.ReadFile(file)
		var env diskEnvelope
		corrupt := err != nil || json.Unmarshal(raw, &env) != nil || env.Version != ENVELOPE_VERSION

		var entry *Entry
		if !corrupt {
			entry = &env.Entry
		}
		if decide(entry, corrupt) {
			if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
				logger.GetLogger().Debugf("failed to remove cache file %s: %v", file, err)
				continue
			}
			removed++
		}
	}
	return removed
}

func (d *diskBackend) Clear() {
	d.Sweep(func(*Entry, bool) bool { return true })
}

func (d *diskBackend) Close() error {
	return nil
}

func (d *diskBackend) filePath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.dir, hex.EncodeToString(sum[:])+CACHE_EXTENSION)
}
