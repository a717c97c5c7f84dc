package logging

import (
	"errors"
	"os"
)

// Env maps environment variable names for logging configuration.
type Env struct {
	Level  string
	Format string
	File   string
}

// Config holds logging configuration settings.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`

	// File enables rotating file output when set.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	c.loadEnv(env)
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.MaxSizeMB != 0 {
		c.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxBackups != 0 {
		c.MaxBackups = overlay.MaxBackups
	}
	if overlay.MaxAgeDays != 0 {
		c.MaxAgeDays = overlay.MaxAgeDays
	}
	if overlay.Compress {
		c.Compress = true
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 100
	}
}

func (c *Config) loadEnv(env *Env) {
	if env == nil {
		return
	}
	if v := os.Getenv(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := os.Getenv(env.File); v != "" {
		c.File = v
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	if err := c.Format.Validate(); err != nil {
		return err
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return errors.New("rotation limits must not be negative")
	}
	return nil
}
