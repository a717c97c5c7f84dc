// Package manifest loads route definitions from a TOML document.
//
// A manifest lists routes as [[route]] tables:
//
//	title = "My App"
//
//	[[route]]
//	name = "home"
//	path = "/"
//	title = "Home"
//	template = "home.html"
//
//	[[route]]
//	name = "user"
//	path = "/users/show"
//	html = "<p>User profile</p>"
//	controller = "append"
//
// Template files are read from a template directory when the manifest is
// built. Controllers are looked up by name; an empty name means "replace".
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// DefaultController is used for routes that name no controller.
const DefaultController = "replace"

// Manifest errors.
var (
	ErrDecode            = errors.New("manifest could not be decoded")
	ErrUnknownController = errors.New("unknown controller")
	ErrDuplicateName     = errors.New("duplicate route name")
	ErrTemplate          = errors.New("template could not be loaded")
	ErrSource            = errors.New("manifest source could not be read")
	ErrMissingPath       = errors.New("route has no path")
	ErrDuplicatePath     = errors.New("duplicate route path")
)

// Manifest is a decoded route manifest.
type Manifest struct {
	// Title is the application title shown in the page shell.
	Title string `toml:"title"`

	Routes []Entry `toml:"route"`
}

// Entry describes one route.
type Entry struct {
	Name  string `toml:"name"`
	Path  string `toml:"path"`
	Title string `toml:"title"`

	// Template is a file in the template directory. HTML is inline markup.
	// At most one of them is set.
	Template string `toml:"template"`
	HTML     string `toml:"html"`

	Controller string `toml:"controller"`
}

// ControllerName returns the entry's controller, defaulted.
func (e Entry) ControllerName() string {
	if e.Controller == "" {
		return DefaultController
	}
	return e.Controller
}

// Decode parses and validates a manifest.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks names, paths and content fields. Names and paths must
// each be unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Routes))
	paths := make(map[string]string, len(m.Routes))
	for i, e := range m.Routes {
		if e.Name == "" {
			return fmt.Errorf("%w: route #%d has no name", ErrDecode, i+1)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = true
		if e.Path == "" {
			return fmt.Errorf("route %q: %w", e.Name, ErrMissingPath)
		}
		if other, ok := paths[e.Path]; ok {
			return fmt.Errorf("%w: %q is used by %q and %q", ErrDuplicatePath, e.Path, other, e.Name)
		}
		paths[e.Path] = e.Name
		if e.Template != "" && e.HTML != "" {
			return fmt.Errorf("%w: route %q sets both template and html", ErrDecode, e.Name)
		}
	}
	return nil
}

// Lookup returns the entry with the given name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Routes {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Encode returns the manifest as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	return toml.Marshal(m)
}

// Load reads a manifest from src and decodes it.
func Load(ctx context.Context, src Source) (*Manifest, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSource, src, err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return m, nil
}
