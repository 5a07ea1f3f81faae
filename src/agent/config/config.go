package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL string
	APIToken   string
	LogLevel   string

	UserID   string
	UserRole string

	CacheDir   string
	PolicyFile string

	SessionPollInterval      time.Duration
	MessagePollInterval      time.Duration
	ConversationPollInterval time.Duration
}

func (c Config) String() string {
	return fmt.Sprintf(
		"APIBaseURL: %s | LogLevel: %s | UserRole: %s | CacheDir: %s | SessionPoll: %s | MessagePoll: %s | ConversationPoll: %s",
		c.APIBaseURL,
		c.LogLevel,
		c.UserRole,
		c.CacheDir,
		c.SessionPollInterval,
		c.MessagePollInterval,
		c.ConversationPollInterval,
	)
}

const CONFIG_FILE_PATH = "./config.yaml"

func InitConfig(configFilePath string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// this will do nothing if the file is missing,
	// so only environment variables will be used.
	_ = godotenv.Load(".env")
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("poll.session_interval", 3*time.Second)
	v.SetDefault("poll.message_interval", 5*time.Second)
	v.SetDefault("poll.conversation_interval", 30*time.Second)

	configFile := CONFIG_FILE_PATH
	if configFilePath != "" {
		configFile = configFilePath
	}
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	if v.GetString("cache.dir") == "" {
		v.Set("cache.dir", defaultCacheDir())
	}

	config := &Config{
		APIBaseURL:               v.GetString("api.base_url"),
		APIToken:                 v.GetString("api.token"),
		LogLevel:                 v.GetString("log.level"),
		UserID:                   v.GetString("user.id"),
		UserRole:                 v.GetString("user.role"),
		CacheDir:                 v.GetString("cache.dir"),
		PolicyFile:               v.GetString("cache.policy_file"),
		SessionPollInterval:      v.GetDuration("poll.session_interval"),
		MessagePollInterval:      v.GetDuration("poll.message_interval"),
		ConversationPollInterval: v.GetDuration("poll.conversation_interval"),
	}

	return config, nil
}

func defaultCacheDir() string {
	d, err := os.UserCacheDir()
	if err != nil || strings.TrimSpace(d) == "" {
		return ".telecare-cache"
	}
	return d + "/telecare"
}
