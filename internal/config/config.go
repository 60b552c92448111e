// Package config loads roster settings from an optional YAML file and
// ROSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/ministry-roster/internal/filter"
)

// DefaultPath is the config file read when no --config is given.
const DefaultPath = "roster.yaml"

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Sheet       SheetConfig  `yaml:"sheet"`
	Cache       CacheConfig  `yaml:"cache"`
	Server      ServerConfig `yaml:"server"`
	// DefaultYear is shown when no year is asked for. A year without
	// services falls back to the newest year that has some.
	DefaultYear string       `yaml:"default_year"`
	LogLevel    string       `yaml:"log_level"`
}

// SheetConfig locates the published roster sheet. URL wins over
// SpreadsheetID when both are set; neither disables the remote tier.
type SheetConfig struct {
	URL           string        `yaml:"url"`
	SpreadsheetID string        `yaml:"spreadsheet_id"`
	Name          string        `yaml:"name"`
	Range         string        `yaml:"range"`
	Timeout       time.Duration `yaml:"timeout"`
}

// CacheConfig selects the store backing the cache and imported tiers.
type CacheConfig struct {
	DSN string        `yaml:"dsn"`
	TTL time.Duration `yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Sheet: SheetConfig{
			Name:    "Sheet1",
			Range:   "A:Z",
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			DSN: "sqlite://roster-cache.db",
			TTL: time.Hour,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
		DefaultYear: time.Now().Format("2006"),
		LogLevel:    "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ROSTER_SHEET_URL"); v != "" {
		c.Sheet.URL = v
	}
	if v := os.Getenv("ROSTER_SPREADSHEET_ID"); v != "" {
		c.Sheet.SpreadsheetID = v
	}
	if v := os.Getenv("ROSTER_SHEET_NAME"); v != "" {
		c.Sheet.Name = v
	}
	if v := os.Getenv("ROSTER_CACHE_DSN"); v != "" {
		c.Cache.DSN = v
	}
	if v := os.Getenv("ROSTER_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("ROSTER_DEFAULT_YEAR"); v != "" {
		c.DefaultYear = v
	}
	if v := os.Getenv("ROSTER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"ROSTER_CACHE_TTL", &c.Cache.TTL},
		{"ROSTER_FETCH_TIMEOUT", &c.Sheet.Timeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env, err)
		}
		*d.dst = parsed
	}
	return nil
}

// CacheSchemes lists the DSN schemes the store understands.
var CacheSchemes = []string{"memory", "sqlite", "postgres", "postgresql"}

// Validate checks the configuration. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache ttl must be positive, got %s", ErrInvalid, c.Cache.TTL)
	}
	if c.Sheet.Timeout <= 0 {
		return fmt.Errorf("%w: sheet timeout must be positive, got %s", ErrInvalid, c.Sheet.Timeout)
	}

	scheme, _, ok := strings.Cut(c.Cache.DSN, "://")
	if !ok || !slices.Contains(CacheSchemes, scheme) {
		return fmt.Errorf("%w: cache dsn %q (valid schemes: %v)", ErrInvalid, c.Cache.DSN, CacheSchemes)
	}

	if !filter.ValidYear(c.DefaultYear) {
		return fmt.Errorf("%w: default year %q must be YYYY or %q", ErrInvalid, c.DefaultYear, filter.AllYears)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// RemoteEnabled reports whether a sheet location is configured.
func (c *Config) RemoteEnabled() bool {
	return c.Sheet.URL != "" || c.Sheet.SpreadsheetID != ""
}
