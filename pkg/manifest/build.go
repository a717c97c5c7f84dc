package manifest

import (
	"fmt"
	"io/fs"

	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// Controllers maps controller names to implementations.
type Controllers map[string]router.ControllerFunc

// Build turns a manifest into route definitions. Template files are read
// from templates once, here; the returned template producers do no I/O.
// templates may be nil when no entry references a file.
func Build(m *Manifest, controllers Controllers, templates fs.FS) (router.Routes, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	routes := make(router.Routes, len(m.Routes))
	for _, e := range m.Routes {
		ctrl, ok := controllers[e.ControllerName()]
		if !ok {
			return nil, fmt.Errorf("route %q: %w %q", e.Name, ErrUnknownController, e.ControllerName())
		}

		markup := e.HTML
		if e.Template != "" {
			if templates == nil {
				return nil, fmt.Errorf("route %q: %w: no template directory for %q", e.Name, ErrTemplate, e.Template)
			}
			data, err := fs.ReadFile(templates, e.Template)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w: %w", e.Name, ErrTemplate, err)
			}
			markup = string(data)
		}

		routes[e.Name] = router.RouteDef{
			Path:       e.Path,
			Template:   templateFunc(e.Name, e.Title, markup),
			Controller: ctrl,
		}
	}
	return routes, nil
}

// templateFunc returns a producer that builds a fresh tree on every call.
func templateFunc(name, title, markup string) router.TemplateFunc {
	return func() *vdom.VNode {
		return vdom.Section(
			vdom.Class("route"),
			vdom.Data("route", name),
			vdom.If(title != "", vdom.H1(title)),
			vdom.Raw(markup),
		)
	}
}
