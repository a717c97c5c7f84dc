package config

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
	Path      string `toml:"path"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `toml:"enabled"`
	TracerName string `toml:"tracer_name"`
}

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Finalize applies defaults, loads environment overrides, and validates.
func (c *MetricsConfig) Finalize() error {
	if c.Namespace == "" {
		c.Namespace = "hashroute"
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
	if v, ok := envBool(EnvPrefix + "METRICS_ENABLED"); ok {
		c.Enabled = v
	}
	if !metricName.MatchString(c.Namespace) {
		return errors.New("namespace must be a valid Prometheus identifier")
	}
	if !strings.HasPrefix(c.Path, "/") {
		return errors.New(`path must start with "/"`)
	}
	return nil
}

// Merge applies non-zero values from overlay.
func (c *MetricsConfig) Merge(overlay *MetricsConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

// Finalize applies defaults and environment overrides.
func (c *TracingConfig) Finalize() {
	if c.TracerName == "" {
		c.TracerName = "hashroute"
	}
	if v, ok := envBool(EnvPrefix + "TRACING_ENABLED"); ok {
		c.Enabled = v
	}
	if v := os.Getenv(EnvPrefix + "TRACER_NAME"); v != "" {
		c.TracerName = v
	}
}

// Merge applies non-zero values from overlay.
func (c *TracingConfig) Merge(overlay *TracingConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.TracerName != "" {
		c.TracerName = overlay.TracerName
	}
}
