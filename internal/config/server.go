package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `toml:"addr"`

	// Title is the page title of the app shell.
	Title string `toml:"title"`

	// MountID is the DOM id of the element routes render into (default "app").
	MountID string `toml:"mount_id"`

	// ReadTimeout and ShutdownTimeout are Go durations ("5s").
	ReadTimeout     string `toml:"read_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	// AllowedOrigins limits WebSocket upgrades. Empty allows same-origin only.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// ReadTimeoutDuration parses the read timeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// ShutdownTimeoutDuration parses the shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.MountID != "" {
		c.MountID = overlay.MountID
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if len(overlay.AllowedOrigins) > 0 {
		c.AllowedOrigins = overlay.AllowedOrigins
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Title == "" {
		c.Title = "hashroute"
	}
	if c.MountID == "" {
		c.MountID = "app"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "10s"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvPrefix + "ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvPrefix + "TITLE"); v != "" {
		c.Title = v
	}
}

func (c *ServerConfig) validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if c.MountID == "" {
		return errors.New("mount_id must not be empty")
	}
	return nil
}
