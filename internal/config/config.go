// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Feed   FeedConfig   `mapstructure:"feed"`
	Ledger LedgerConfig `mapstructure:"ledger"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

// FeedConfig holds market data feed configuration.
type FeedConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LedgerConfig holds paper-trading ledger configuration.
type LedgerConfig struct {
	DBPath         string  `mapstructure:"db_path"`
	InitialBalance float64 `mapstructure:"initial_balance"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/polymarket-cli"
	}
	return filepath.Join(home, ".config", "polymarket-cli")
}

// DefaultDBPath returns the default ledger database path.
func DefaultDBPath() string {
	return filepath.Join(DefaultConfigDir(), "trades.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Defaults
	v.SetDefault("feed.base_url", "https://gamma-api.polymarket.com")
	v.SetDefault("feed.timeout", "15s")
	v.SetDefault("ledger.db_path", filepath.Join(configDir, "trades.db"))
	v.SetDefault("ledger.initial_balance", 1000.0)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("log.level", "warn")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("creating config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POLYMARKET_GAMMA_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("POLYMARKET_DB"); v != "" {
		cfg.Ledger.DBPath = v
	}
	if v := os.Getenv("POLYMARKET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url must not be empty")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive")
	}
	if c.Ledger.InitialBalance <= 0 {
		return fmt.Errorf("ledger.initial_balance must be positive")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
