package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/vango-dev/hashroute/internal/logging"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hashroute.toml"

	// OverlayConfigPattern is the file name pattern for environment overlays.
	OverlayConfigPattern = "hashroute.%s.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "HASHROUTE_"

	// EnvOverlay selects an overlay file.
	EnvOverlay = EnvPrefix + "ENV"
)

// ErrInvalid is returned when the configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

var loggingEnv = &logging.Env{
	Level:  EnvPrefix + "LOG_LEVEL",
	Format: EnvPrefix + "LOG_FORMAT",
	File:   EnvPrefix + "LOG_FILE",
}

// Config is the complete hashroute.toml configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  logging.Config `toml:"logging"`
	Router   RouterConfig   `toml:"router"`
	Manifest ManifestConfig `toml:"manifest"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Tracing  TracingConfig  `toml:"tracing"`

	// path is where the base file was loaded from, or "".
	path string
}

// RouterConfig configures hash dispatch.
type RouterConfig struct {
	// StrictSegments rejects hashes with segments beyond the sub-route.
	StrictSegments bool `toml:"strict_segments"`
}

// Path returns the file the configuration was loaded from, or "" when
// only defaults and environment were used.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory relative paths in the file resolve against.
func (c *Config) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// Resolve makes p relative to the configuration file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Load reads path (hashroute.toml when empty), applies any overlay and
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigFileName
	}

	cfg, err := load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = &Config{}
	case err != nil:
		return nil, err
	default:
		cfg.path = path
	}

	if overlay := overlayPath(filepath.Dir(path)); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a finalized configuration built from defaults and the
// environment only.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a TOML document without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", ErrInvalid, err)
	}
	return &cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates
// every section.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("%w: server: %w", ErrInvalid, err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalid, err)
	}
	c.Router.loadEnv()
	if err := c.Manifest.Finalize(); err != nil {
		return fmt.Errorf("%w: manifest: %w", ErrInvalid, err)
	}
	if err := c.Metrics.Finalize(); err != nil {
		return fmt.Errorf("%w: metrics: %w", ErrInvalid, err)
	}
	c.Tracing.Finalize()
	return nil
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	if overlay.Router.StrictSegments {
		c.Router.StrictSegments = true
	}
	c.Manifest.Merge(&overlay.Manifest)
	c.Metrics.Merge(&overlay.Metrics)
	c.Tracing.Merge(&overlay.Tracing)
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *RouterConfig) loadEnv() {
	if v, ok := envBool(EnvPrefix + "STRICT_SEGMENTS"); ok {
		c.StrictSegments = v
	}
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath(dir string) string {
	env := os.Getenv(EnvOverlay)
	if env == "" {
		return ""
	}
	p := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func envBool(name string) (value, ok bool) {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
