package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. UHTTP_REDIRECT_LIMIT.
const Prefix = "UHTTP"

// Config holds the client defaults.
type Config struct {
	Client  ClientConfig
	Dial    DialConfig
	Logging LogConfig
}

// ClientConfig holds request defaults.
type ClientConfig struct {
	UserAgent     string `envconfig:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64; rv:66.0) Gecko/20100101 Firefox/66.0"`
	RedirectLimit int    `envconfig:"REDIRECT_LIMIT" default:"2"`
}

// DialConfig holds connection and stream settings.
type DialConfig struct {
	TLSRetryInterval time.Duration `envconfig:"TLS_RETRY_INTERVAL" default:"20ms"`
	ReadBufferSize   int           `envconfig:"READ_BUFFER_SIZE" default:"4096"`
	ChunkReadSize    int           `envconfig:"CHUNK_READ_SIZE" default:"4096"`
	Proxy            string        `envconfig:"PROXY"` // http://[user:pass@]host[:port], empty dials directly
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	// sections share the prefix, so keys read UHTTP_LOG_LEVEL rather than
	// UHTTP_LOGGING_LOG_LEVEL
	for _, section := range []interface{}{&cfg.Client, &cfg.Dial, &cfg.Logging} {
		if err := envconfig.Process(Prefix, section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cfg.Client.RedirectLimit < 0 {
		return nil, fmt.Errorf("failed to load config: negative redirect limit %d", cfg.Client.RedirectLimit)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			UserAgent:     "Mozilla/5.0 (X11; Linux x86_64; rv:66.0) Gecko/20100101 Firefox/66.0",
			RedirectLimit: 2,
		},
		Dial: DialConfig{
			TLSRetryInterval: 20 * time.Millisecond,
			ReadBufferSize:   4096,
			ChunkReadSize:    4096,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
