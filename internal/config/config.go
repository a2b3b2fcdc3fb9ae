// Package config loads and saves the deckwright configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/deckwright/deckwright/internal/deck"
)

// Config represents the application configuration.
type Config struct {
	// Defaults applied when the command line leaves a choice open
	Defaults DefaultsConfig `toml:"defaults"`

	// Card cache configuration
	Cache CacheConfig `toml:"cache"`

	// Synergy detection configuration
	Synergy SynergyConfig `toml:"synergy"`

	// LLM explanation configuration
	LLM LLMConfig `toml:"llm"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DefaultsConfig contains the default analysis settings.
type DefaultsConfig struct {
	Format    string `toml:"format"`    // Default deck format (e.g., "commander")
	Algorithm string `toml:"algorithm"` // Mana base algorithm ("simple" or "cmc")
}

// CacheConfig contains card cache settings.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"` // Enable the local card cache
	Path    string `toml:"path"`    // Database path (empty = default location)
	TTL     string `toml:"ttl"`     // Cache TTL (e.g., "720h")
}

// SynergyConfig contains synergy detection settings.
type SynergyConfig struct {
	MinThemeCards int `toml:"min_theme_cards"` // Cards a theme needs to be reported
}

// LLMConfig contains settings for AI-generated explanations.
type LLMConfig struct {
	Enabled bool   `toml:"enabled"` // Enable LLM explanations
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"` // Request timeout (e.g., "60s")
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Format:    "",
			Algorithm: deck.Simple.String(),
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "",
			TTL:     "720h",
		},
		Synergy: SynergyConfig{
			MinThemeCards: 5,
		},
		LLM: LLMConfig{
			Enabled: false,
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
			Timeout: "60s",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "deckwright")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config
// when no file exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

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
	if c.Defaults.Algorithm != "" {
		if _, ok := deck.ParseAlgorithm(c.Defaults.Algorithm); !ok {
			return fmt.Errorf("invalid mana base algorithm %q", c.Defaults.Algorithm)
		}
	}

	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Cache.TTL, err)
	}

	if c.Synergy.MinThemeCards < 0 {
		return fmt.Errorf("min theme cards cannot be negative: %d", c.Synergy.MinThemeCards)
	}

	if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
		return fmt.Errorf("invalid LLM timeout %q: %w", c.LLM.Timeout, err)
	}

	return nil
}

// GetCacheTTL returns the cache TTL as a duration.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.TTL)
}

// GetLLMTimeout returns the LLM request timeout as a duration.
func (c *Config) GetLLMTimeout() (time.Duration, error) {
	return time.ParseDuration(c.LLM.Timeout)
}
