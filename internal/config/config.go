package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/go-strftime"
	"gopkg.in/yaml.v3"

	"github.com/credage/credage/internal/utils/fileutil"
	"github.com/credage/credage/internal/utils/logger"
)

// Rule is an optional audit rule: a boolean expression evaluated per record
// in addition to the age threshold.
type Rule struct {
	ID         string `yaml:"id"`
	Expression string `yaml:"expression"`
}

// Config holds all settings for an audit run. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	// MaxAgeDays is the inclusive age threshold in days.
	MaxAgeDays int `yaml:"max_age_days"`
	// DateFormat is a strptime-style layout, e.g. "%Y-%m-%d".
	DateFormat string `yaml:"date_format"`
	// Delimiter separates record fields.
	Delimiter string `yaml:"delimiter"`
	// SkipHeader drops the first non-blank line of the export.
	SkipHeader bool `yaml:"skip_header"`

	Rules []Rule `yaml:"rules"`

	Logging logger.LoggingConfig `yaml:"logging"`
}

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		MaxAgeDays: DefaultMaxAgeDays,
		DateFormat: DefaultDateFormat,
		Delimiter:  DefaultDelimiter,
		Logging: logger.LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads a Config from path. Defaults are applied before unmarshal so a
// partial file only overrides what it mentions.
func Load(path string) (*Config, error) {
	safePath := filepath.Clean(path)
	data, err := os.ReadFile(safePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", safePath, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and falls back to defaults otherwise.
// Used for the implicit default config location; an explicitly given path
// should go through Load so a missing file surfaces as an error.
func LoadOrDefault(path string) (*Config, error) {
	if !fileutil.FileExists(path) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return fileutil.AtomicWriteFile(path, data, 0644)
}

// Validate checks the invariants the audit relies on. It is called once
// after flags are merged, before any processing begins.
func (c *Config) Validate() error {
	if c.MaxAgeDays <= 0 {
		return fmt.Errorf("max_age_days must be a positive integer, got %d", c.MaxAgeDays)
	}
	if c.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	if _, err := strftime.Layout(c.DateFormat); err != nil {
		return fmt.Errorf("invalid date format %q: %w", c.DateFormat, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
