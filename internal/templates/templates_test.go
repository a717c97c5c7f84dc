package templates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hashroute/internal/config"
	apperrors "github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/pkg/manifest"
	"github.com/vango-dev/hashroute/pkg/mount"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"docs", false},
		{"s3", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if apperrors.Code(err) != "E030" {
					t.Errorf("Get(%q) code = %q, want E030", tt.name, apperrors.Code(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	list := List()
	var names []string
	for _, tmpl := range list {
		names = append(names, tmpl.Name)
		if tmpl.Description == "" {
			t.Errorf("template %q has no description", tmpl.Name)
		}
	}
	if got := strings.Join(names, ","); got != "docs,minimal,s3" {
		t.Errorf("List() = %s", got)
	}
}

// Every template must produce a project that loads and builds.
func TestCreateLoads(t *testing.T) {
	for _, tmpl := range List() {
		t.Run(tmpl.Name, func(t *testing.T) {
			dir := t.TempDir()
			if err := tmpl.Create(dir, Config{Title: "Handbook", Addr: "127.0.0.1:9000"}); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			cfg, err := config.Load(filepath.Join(dir, "hashroute.toml"))
			if err != nil {
				t.Fatalf("config.Load failed: %v", err)
			}
			if cfg.Server.Addr != "127.0.0.1:9000" {
				t.Errorf("Addr = %q", cfg.Server.Addr)
			}

			m, err := manifest.Load(context.Background(), manifest.FileSource{Path: filepath.Join(dir, "routes.toml")})
			if err != nil {
				t.Fatalf("manifest.Load failed: %v", err)
			}
			if m.Title != "Handbook" {
				t.Errorf("manifest title = %q", m.Title)
			}
			if _, ok := m.Lookup(m.Routes[0].Name); !ok || m.Routes[0].Path != "/" {
				t.Errorf("first route = %+v, want the default route", m.Routes[0])
			}

			templateDir := os.DirFS(cfg.Resolve(cfg.Manifest.Templates))
			if _, err := manifest.Build(m, manifest.Controllers(mount.Controllers()), templateDir); err != nil {
				t.Fatalf("Build failed: %v", err)
			}
		})
	}
}

func TestCreateS3Config(t *testing.T) {
	tmpl, _ := Get("s3")
	dir := t.TempDir()
	if err := tmpl.Create(dir, Config{Bucket: "site-routes", Region: "eu-west-1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "hashroute.toml"))
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	s3 := cfg.Manifest.S3
	if !s3.Enabled() || s3.Bucket != "site-routes" || s3.Region != "eu-west-1" {
		t.Errorf("S3 = %+v", s3)
	}
}

func TestCreateRefusesOverwrite(t *testing.T) {
	tmpl, _ := Get("minimal")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "routes.toml"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := tmpl.Create(dir, Config{})
	var ae *apperrors.Error
	if !errors.As(err, &ae) || ae.Code != "E031" {
		t.Fatalf("Create err = %v, want E031", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "routes.toml"))
	if string(data) != "mine" {
		t.Error("existing file was modified")
	}
	if _, err := os.Stat(filepath.Join(dir, "hashroute.toml")); err == nil {
		t.Error("Create wrote files after refusing")
	}

	if err := tmpl.Create(dir, Config{Overwrite: true}); err != nil {
		t.Fatalf("Create with Overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "routes.toml"))
	if !strings.Contains(string(data), `title = "hashroute app"`) {
		t.Errorf("routes.toml not replaced:\n%s", data)
	}
}

func TestTemplatesParse(t *testing.T) {
	for _, tmpl := range List() {
		for _, p := range tmpl.Paths() {
			if strings.TrimSpace(tmpl.Files[p]) == "" && !strings.HasSuffix(p, ".keep") {
				t.Errorf("%s/%s is empty", tmpl.Name, p)
			}
		}
	}
}
