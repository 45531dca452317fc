// Package config loads depot settings from a YAML file, a .env file and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level depot configuration.
type Config struct {
	Addr     string         `yaml:"addr"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite3 | pgx
	DSN    string `yaml:"dsn"`
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Size   int           `yaml:"size"`
	Secure bool          `yaml:"secure"`
}

// CacheConfig bounds the per-version record cache. Disabled turns it off;
// a zero size means the default.
type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	Size     int           `yaml:"size"`
	Disabled bool          `yaml:"disabled"`
}

// Capacity returns the number of versions to cache, zero when disabled.
func (c CacheConfig) Capacity() int {
	if c.Disabled {
		return 0
	}
	return c.Size
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the optional YAML file at path, then applies .env and
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads a YAML configuration file. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("DEPOT_ADDR")); v != "" {
		c.Addr = v
	} else if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if strings.HasPrefix(v, ":") {
			c.Addr = v
		} else {
			c.Addr = ":" + v
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEPOT_DB_DRIVER")); v != "" {
		c.Database.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPOT_DB_DSN")); v != "" {
		c.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPOT_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPOT_SESSION_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DEPOT_SESSION_TTL: %w", err)
		}
		c.Session.TTL = d
	}
	if v := strings.TrimSpace(os.Getenv("DEPOT_CACHE_DISABLED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEPOT_CACHE_DISABLED: %w", err)
		}
		c.Cache.Disabled = b
	}
	if v := strings.TrimSpace(os.Getenv("DEPOT_SESSION_SECURE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEPOT_SESSION_SECURE: %w", err)
		}
		c.Session.Secure = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite3" {
		c.Database.DSN = "depot.db"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 2 * time.Hour
	}
	if c.Session.Size <= 0 {
		c.Session.Size = 10000
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 16
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
