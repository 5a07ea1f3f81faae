package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sahatak/telecare-agent/src/agent/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsApplyWithoutConfigFile(t *testing.T) {
	conf, err := config.InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", conf.APIBaseURL)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, 3*time.Second, conf.SessionPollInterval)
	assert.Equal(t, 30*time.Second, conf.ConversationPollInterval)
	assert.NotEmpty(t, conf.CacheDir)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://api.telecare.example
log:
  level: debug
poll:
  session_interval: 7s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	conf, err := config.InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.telecare.example", conf.APIBaseURL)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, 7*time.Second, conf.SessionPollInterval)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5*time.Second, conf.MessagePollInterval)
}
