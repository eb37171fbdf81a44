// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Perfume service API configuration
	API APIConfig `toml:"api"`

	// Manufacturing device configuration
	Device DeviceConfig `toml:"device"`

	// Catalog cache configuration
	Cache CacheConfig `toml:"cache"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// APIConfig contains perfume service connection settings.
type APIConfig struct {
	BaseURL      string  `toml:"base_url"`       // Perfume service base URL
	Timeout      string  `toml:"timeout"`        // Per-request timeout (e.g., "10s")
	DeviceID     string  `toml:"device_id"`      // Value of the X-Device-ID header
	RateLimitRPS float64 `toml:"rate_limit_rps"` // Requests per second (0 = client default)
}

// DeviceConfig contains simulated device settings.
type DeviceConfig struct {
	MaxSlots     int     `toml:"max_slots"`     // Number of physical ingredient slots
	SlotCapacity float64 `toml:"slot_capacity"` // Fill amount per slot (ml)
}

// CacheConfig contains catalog cache settings.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"` // Enable the on-disk catalog cache
	TTL     string `toml:"ttl"`     // Cache TTL (e.g., "15m")
	Path    string `toml:"path"`    // Cache database path ("" = default location)
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool   `toml:"debug_mode"` // Enable debug logging
	UserID    string `toml:"user_id"`    // Default user identifier
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8080",
			Timeout:  "10s",
			DeviceID: "moodrop-dev",
		},
		Device: DeviceConfig{
			MaxSlots:     10,
			SlotCapacity: 10,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     "15m",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".moodrop")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default path. Returns the default
// config if no file exists.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from path. Returns the default config
// if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url cannot be empty")
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit cannot be negative: %v", c.API.RateLimitRPS)
	}
	if c.Device.MaxSlots <= 0 {
		return fmt.Errorf("max slots must be positive: %d", c.Device.MaxSlots)
	}
	if c.Device.SlotCapacity <= 0 {
		return fmt.Errorf("slot capacity must be positive: %v", c.Device.SlotCapacity)
	}
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Cache.TTL, err)
	}
	return nil
}

// APITimeout returns the API timeout as a duration.
func (c *Config) APITimeout() (time.Duration, error) {
	return time.ParseDuration(c.API.Timeout)
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.TTL)
}

// CachePath returns the configured cache database path, or the default
// location next to the config file.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	configPath, err := DefaultPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "catalog_cache.db"), nil
}
