package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/hashroute/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// Title is the application title.
	Title string

	// Addr is the listen address written to hashroute.toml.
	Addr string

	// Bucket and Region locate the manifest for the s3 template.
	Bucket string
	Region string

	// Overwrite allows replacing existing files.
	Overwrite bool
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "hashroute app"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Bucket == "" {
		c.Bucket = "my-routes"
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	return c
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"docs":    docsTemplate(),
	"s3":      s3Template(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E030").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: docs, minimal, s3")
	}
	return tmpl, nil
}

// List returns all available templates sorted by name.
func List() []*Template {
	out := make([]*Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Paths returns the template's file paths in order.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create generates a project from the template. Existing files are
// left untouched unless cfg.Overwrite is set.
func (t *Template) Create(dir string, cfg Config) error {
	cfg = cfg.withDefaults()

	if !cfg.Overwrite {
		for _, relPath := range t.Paths() {
			if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
				return errors.New("E031").WithDetail(relPath + " already exists")
			}
		}
	}

	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(fullPath), err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", fullPath, err)
		}
	}
	return nil
}

const configFile = `[server]
addr = "{{.Addr}}"
title = "{{.Title}}"
mount_id = "app"

[logging]
level = "info"
format = "text"

[manifest]
path = "routes.toml"
templates = "templates"

[metrics]
enabled = true
path = "/metrics"
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Home and about pages",
		Files: map[string]string{
			"hashroute.toml": configFile,
			"routes.toml": `title = "{{.Title}}"

[[route]]
name = "home"
path = "/"
title = "{{.Title}}"
template = "home.html"

[[route]]
name = "about"
path = "/about"
title = "About"
template = "about.html"
`,
			"templates/home.html": `<p>Welcome to {{.Title}}.</p>
<nav><a href="#/about">About</a></nav>
`,
			"templates/about.html": `<p>Edit routes.toml to add pages.</p>
<nav><a href="#/">Home</a></nav>
`,
		},
	}
}

// docsTemplate returns a template that routes documentation pages by
// sub-route.
func docsTemplate() *Template {
	return &Template{
		Name:        "docs",
		Description: "Documentation site with #/docs/page/<slug> sub-routes",
		Files: map[string]string{
			"hashroute.toml": configFile + `
[router]
strict_segments = true
`,
			"routes.toml": `title = "{{.Title}}"

[[route]]
name = "index"
path = "/"
title = "{{.Title}}"
template = "index.html"

[[route]]
name = "docs"
path = "/docs"
title = "Contents"
template = "contents.html"

[[route]]
name = "page"
path = "/docs/page"
template = "page.html"
controller = "append"
`,
			"templates/index.html": `<p>Start with the <a href="#/docs">contents</a>.</p>
`,
			"templates/contents.html": `<ul>
  <li><a href="#/docs/page/intro">Introduction</a></li>
  <li><a href="#/docs/page/install">Installation</a></li>
</ul>
`,
			"templates/page.html": `<article class="doc-page"></article>
`,
		},
	}
}

// s3Template returns a template whose manifest lives in a bucket.
func s3Template() *Template {
	return &Template{
		Name:        "s3",
		Description: "Manifest loaded from S3",
		Files: map[string]string{
			"hashroute.toml": configFile + `
[manifest.s3]
bucket = "{{.Bucket}}"
key = "routes.toml"
region = "{{.Region}}"
`,
			"routes.toml": `title = "{{.Title}}"

[[route]]
name = "home"
path = "/"
title = "{{.Title}}"
html = "<p>Served from s3://{{.Bucket}}/routes.toml</p>"
`,
			"templates/.keep": ``,
		},
	}
}
