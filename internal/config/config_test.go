package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/hashroute/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if cfg.Server.Addr != ":8080" || cfg.Server.MountID != "app" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeoutDuration() != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeoutDuration())
	}
	if cfg.Logging.Level != logging.LevelInfo {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Manifest.Path != "routes.toml" || cfg.Manifest.Templates != "templates" {
		t.Errorf("Manifest = %+v", cfg.Manifest)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" || cfg.Metrics.Namespace != "hashroute" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.TracerName != "hashroute" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if cfg.Path() != "" || cfg.Dir() != "." {
		t.Errorf("Path() = %q Dir() = %q", cfg.Path(), cfg.Dir())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, `
[server]
addr = "127.0.0.1:9000"
title = "Demo"
allowed_origins = ["https://example.com"]

[logging]
level = "debug"
format = "json"

[router]
strict_segments = true

[manifest]
path = "app/routes.toml"

[manifest.s3]
bucket = "routes"
region = "eu-west-1"
use_path_style = true

[metrics]
enabled = true
namespace = "demo"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.Title != "Demo" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Level != logging.LevelDebug || cfg.Logging.Format != logging.FormatJSON {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if !cfg.Router.StrictSegments {
		t.Error("StrictSegments = false")
	}
	if !cfg.Manifest.S3.Enabled() || cfg.Manifest.S3.Key != "routes.toml" || !cfg.Manifest.S3.UsePathStyle {
		t.Errorf("S3 = %+v", cfg.Manifest.S3)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "demo" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if got := cfg.Resolve(cfg.Manifest.Path); got != filepath.Join(dir, "app/routes.toml") {
		t.Errorf("Resolve() = %q", got)
	}
	if got := cfg.Resolve("/abs/routes.toml"); got != "/abs/routes.toml" {
		t.Errorf("Resolve(abs) = %q", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HASHROUTE_ADDR", ":7000")
	t.Setenv("HASHROUTE_LOG_LEVEL", "warn")
	t.Setenv("HASHROUTE_STRICT_SEGMENTS", "true")
	t.Setenv("HASHROUTE_METRICS_ENABLED", "1")
	t.Setenv("HASHROUTE_S3_BUCKET", "env-bucket")
	t.Setenv("HASHROUTE_S3_REGION", "us-east-1")
	t.Setenv("HASHROUTE_S3_ANONYMOUS", "yes")

	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, "[server]\naddr = \":9000\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Logging.Level != logging.LevelWarn {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if !cfg.Router.StrictSegments || !cfg.Metrics.Enabled {
		t.Error("boolean overrides not applied")
	}
	if cfg.Manifest.S3.Bucket != "env-bucket" {
		t.Errorf("Bucket = %q", cfg.Manifest.S3.Bucket)
	}
	if !cfg.Manifest.S3.Anonymous {
		t.Error("S3 anonymous override not applied")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, "[server]\ntitle = \"Base\"\naddr = \":9000\"\n")
	writeFile(t, dir, "hashroute.prod.toml", "[server]\ntitle = \"Prod\"\n")
	t.Setenv(EnvOverlay, "prod")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Title != "Prod" || cfg.Server.Addr != ":9000" {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[server\naddr = 1"},
		{"bad addr", "[server]\naddr = \"nope\""},
		{"bad timeout", "[server]\nshutdown_timeout = \"soon\""},
		{"bad log level", "[logging]\nlevel = \"loud\""},
		{"s3 without region", "[manifest.s3]\nbucket = \"b\""},
		{"bad namespace", "[metrics]\nnamespace = \"no-dashes\""},
		{"bad metrics path", "[metrics]\npath = \"metrics\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), ConfigFileName, tt.content)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	cfg.Server.Title = "Saved"

	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Server.Title != "Saved" {
		t.Errorf("Title = %q", loaded.Server.Title)
	}
}
