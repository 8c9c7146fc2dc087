package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault tests the documented defaults
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultMaxAgeDays, cfg.MaxAgeDays)
	assert.Equal(t, DefaultDateFormat, cfg.DateFormat)
	assert.Equal(t, DefaultDelimiter, cfg.Delimiter)
	assert.False(t, cfg.SkipHeader)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

// TestLoad tests loading a partial config file over defaults
func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `max_age_days: 30
rules:
  - id: stale-admin
    expression: ID startsWith "admin" && Age >= 7
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.MaxAgeDays)
	// Unmentioned fields keep their defaults
	assert.Equal(t, DefaultDateFormat, cfg.DateFormat)
	assert.Equal(t, DefaultDelimiter, cfg.Delimiter)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "stale-admin", cfg.Rules[0].ID)
}

// TestLoadMissing tests that a missing explicit path is an error
func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestLoadOrDefault tests the implicit config location fallback
func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxAgeDays, cfg.MaxAgeDays)
}

// TestSaveRoundtrip tests Save followed by Load
func TestSaveRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.MaxAgeDays = 180
	cfg.SkipHeader = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 180, loaded.MaxAgeDays)
	assert.True(t, loaded.SkipHeader)
}

// TestValidate tests the configuration invariants
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero max age", func(c *Config) { c.MaxAgeDays = 0 }, true},
		{"negative max age", func(c *Config) { c.MaxAgeDays = -7 }, true},
		{"empty delimiter", func(c *Config) { c.Delimiter = "" }, true},
		{"bad date format", func(c *Config) { c.DateFormat = "%Q" }, true},
		{"alternate date format", func(c *Config) { c.DateFormat = "%m/%d/%Y" }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"critical log level", func(c *Config) { c.Logging.Level = "CRITICAL" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
