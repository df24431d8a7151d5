// Package config loads the game's configuration once at startup. The
// resulting value is immutable and injected into the collaborators;
// nothing reads ambient global state after load.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete game configuration.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Game     GameConfig     `json:"game" yaml:"game"`
	Quotes   QuotesConfig   `json:"quotes" yaml:"quotes"`
}

// DatabaseConfig locates the SQLite ledger.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// GameConfig contains gameplay parameters.
type GameConfig struct {
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
}

// QuotesConfig selects and configures the quote provider.
type QuotesConfig struct {
	Provider string `json:"provider" yaml:"provider"` // "alphavantage" or "static"
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "30s"
}

// ParseTimeout converts the timeout string to a time.Duration.
func (q QuotesConfig) ParseTimeout() (time.Duration, error) {
	if q.Timeout == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(q.Timeout)
}

// Load reads configuration from path (JSON or YAML), overlays secrets
// from the environment and validates the result. An empty path yields
// the defaults. A .env file in the working directory is honored when
// present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// Try YAML first, fall back to JSON.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
			}
		}
	}

	if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" {
		cfg.Quotes.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Game.StartingBalance <= 0 {
		return fmt.Errorf("game.starting_balance must be positive")
	}
	switch c.Quotes.Provider {
	case "alphavantage":
		if c.Quotes.APIKey == "" {
			return fmt.Errorf("quotes.api_key (or ALPHAVANTAGE_API_KEY) required for alphavantage provider")
		}
	case "static":
	default:
		return fmt.Errorf("quotes.provider must be 'alphavantage' or 'static'")
	}
	if _, err := c.Quotes.ParseTimeout(); err != nil {
		return fmt.Errorf("quotes.timeout: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./gameData.db",
		},
		Game: GameConfig{
			StartingBalance: 1000.00,
		},
		Quotes: QuotesConfig{
			Provider: "static",
			Timeout:  "30s",
		},
	}
}
