// Package config loads the client settings from the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every command.
type Config struct {
	// BaseURL is the scheme and host of the catalog API, e.g. http://localhost:8888.
	BaseURL   string `env:"API_BASE_URL" yaml:"base_url"`
	APIKey    string `env:"API_KEY" yaml:"api_key"`
	KeyHeader string `env:"API_KEY_HEADER" yaml:"api_key_header"`

	Timeout time.Duration `env:"TIMEOUT" yaml:"timeout"`
	// RateLimit caps outgoing requests per second. Zero means unlimited.
	RateLimit float64 `env:"RATE_LIMIT" yaml:"rate_limit"`

	LogLevel string `env:"LOG_LEVEL" yaml:"log_level"`
	LogFile  string `env:"LOG_FILE" yaml:"log_file"`
}

// EnvPrefix is prepended to every variable name, e.g. BOOKFATHER_API_KEY.
const EnvPrefix = "BOOKFATHER_"

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		KeyHeader: "apikey",
		Timeout:   30 * time.Second,
		LogLevel:  "info",
	}
}

// Load builds a Config from the defaults, then the YAML file at path (when
// path is not empty), then BOOKFATHER_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the API client cannot work without.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required (BOOKFATHER_API_BASE_URL or --base-url)"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base URL %q", c.BaseURL))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("API key is required (BOOKFATHER_API_KEY or --api-key)"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate limit must not be negative"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}
