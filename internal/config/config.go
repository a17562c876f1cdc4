package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// APIConfig holds settings for the remote catalog API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig selects an offline fixture in place of the remote API.
type CatalogConfig struct {
	Fixture string `mapstructure:"fixture"`
	Watch   bool   `mapstructure:"watch"`
}

// LogConfig controls the diagnostic log. The TUI owns the terminal, so logs
// only go to a file.
type LogConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig controls the JSONL session event stream.
type TelemetryConfig struct {
	File string `mapstructure:"file"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Mouse bool `mapstructure:"mouse"`
}

// Config holds all runtime configuration for a greenhouse session.
// Values are populated from .greenhouse.yaml, GREENHOUSE_* env vars, and CLI flags.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	UI        UIConfig        `mapstructure:"ui"`
	Verbose   bool            `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("api.base_url", "https://openapi.programming-hero.com/api")
	viper.SetDefault("api.timeout", 8*time.Second)
	viper.SetDefault("catalog.fixture", "")
	viper.SetDefault("catalog.watch", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("telemetry.file", "")
	viper.SetDefault("ui.mouse", true)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Catalog.Fixture == "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: api.base_url %q is not an absolute URL", c.API.BaseURL)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: api.timeout must be positive, got %s", c.API.Timeout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Catalog.Watch && c.Catalog.Fixture == "" {
		return fmt.Errorf("config: catalog.watch requires catalog.fixture")
	}
	return nil
}
