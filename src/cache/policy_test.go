package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownType(t *testing.T) {
	table := cache.NewPolicyTable()

	policy := table.Resolve(cache.TypeDoctorsList)
	assert.Equal(t, 10*time.Minute, policy.TTL)
	assert.Equal(t, cache.BackendPersistent, policy.Backend)
}

func TestResolveUnknownTypeUsesFallback(t *testing.T) {
	table := cache.NewPolicyTable()

	policy := table.Resolve("never_registered")
	assert.Equal(t, time.Minute, policy.TTL)
	assert.Equal(t, cache.BackendMemory, policy.Backend)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.yaml")
	content := `
doctors_list:
  ttl: 1h
  backend: persistent
session_status:
  ttl: 2s
  backend: bogus
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table := cache.NewPolicyTable()
	require.NoError(t, table.LoadOverrides(path))

	assert.Equal(t, time.Hour, table.Resolve(cache.TypeDoctorsList).TTL)

	// Unknown backend names degrade to memory.
	sessions := table.Resolve(cache.TypeSessionStatus)
	assert.Equal(t, 2*time.Second, sessions.TTL)
	assert.Equal(t, cache.BackendMemory, sessions.Backend)
}

func TestLoadOverridesMissingFile(t *testing.T) {
	table := cache.NewPolicyTable()
	assert.Error(t, table.LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml")))
}
