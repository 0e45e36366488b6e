// Package config loads settings shared by the pcd binaries from PCD_*
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/client"
)

// Prefix is prepended to every variable name, e.g. PCD_API_BASE_URL.
const Prefix = "PCD"

// Config holds application configuration.
type Config struct {
	APIBaseURL       string        `envconfig:"API_BASE_URL"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"1"`
	RetryBaseBackoff time.Duration `envconfig:"RETRY_BASE_BACKOFF" default:"200ms"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	Debug            bool          `envconfig:"DEBUG" default:"false"`
}

// Load populates Config from environment variables (prefix PCD_).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = client.DefaultBaseURL
	}
	return &cfg, nil
}

// Level parses LogLevel with zerolog.ParseLevel, falling back to info for
// empty or unknown values. Debug forces debug level.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{client.WithDebugLogging(c.Debug)}
	if c.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.RetryMaxAttempts > 1 {
		opts = append(opts, client.WithRetry(c.RetryMaxAttempts, c.RetryBaseBackoff))
	}
	return opts
}

// NewClient builds a client for APIBaseURL.
func (c *Config) NewClient() (*client.Client, error) {
	return client.New(c.APIBaseURL, c.ClientOptions()...)
}

// Init configures logging and reports the effective settings.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.Level())

	log.Debug().
		Str("api_base_url", c.APIBaseURL).
		Dur("http_timeout", c.HTTPTimeout).
		Int("retry_max_attempts", c.RetryMaxAttempts).
		Str("log_level", c.Level().String()).
		Msg("configuration loaded")
}
