package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  path: /tmp/game.db
game:
  starting_balance: 2500.00
quotes:
  provider: alphavantage
  api_key: secret
  timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/game.db", cfg.Database.Path)
	assert.Equal(t, 2500.00, cfg.Game.StartingBalance)
	assert.Equal(t, "alphavantage", cfg.Quotes.Provider)
	assert.Equal(t, "secret", cfg.Quotes.APIKey)

	timeout, err := cfg.Quotes.ParseTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "database": {"path": "./game.db"},
  "game": {"starting_balance": 1000},
  "quotes": {"provider": "static"}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "static", cfg.Quotes.Provider)
}

func TestEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  path: ./game.db
game:
  starting_balance: 1000
quotes:
  provider: alphavantage
  api_key: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Quotes.APIKey)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"non-positive balance", func(c *Config) { c.Game.StartingBalance = 0 }},
		{"unknown provider", func(c *Config) { c.Quotes.Provider = "oracle" }},
		{"alphavantage without key", func(c *Config) { c.Quotes.Provider = "alphavantage" }},
		{"bad timeout", func(c *Config) { c.Quotes.Timeout = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
