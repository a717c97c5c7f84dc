package router

import (
	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// Target is the UI insertion point a controller renders into.
// A nil Target means no insertion point was supplied.
type Target any

// TemplateFunc produces the content a controller renders.
type TemplateFunc func() *vdom.VNode

// ControllerFunc renders a route into a target.
// subRoute is the raw positional segment after a two-level base, or "".
type ControllerFunc func(target Target, template TemplateFunc, subRoute string)

// RouteDef is the registration input for one route.
type RouteDef struct {
	// Path is the table key (e.g. "/users" or "/users/list").
	Path string

	// Template produces the route's content.
	Template TemplateFunc

	// Controller renders the content into the target.
	Controller ControllerFunc
}

// Route is a registered route.
type Route struct {
	// Name is the registration key the route was added under.
	Name string

	Path       string
	Template   TemplateFunc
	Controller ControllerFunc
}

// Routes maps route names to definitions.
type Routes map[string]RouteDef

// Match is the result of resolving a hash.
type Match struct {
	// Route is the matched route, or the "/" route when Fallback is set.
	Route *Route

	// Fragment is the parsed hash.
	Fragment fragment.Fragment

	// Fallback reports that the base route was not registered and the
	// default route was used instead.
	Fallback bool
}

// SubRoute returns the raw sub-route segment of the match.
func (m Match) SubRoute() string {
	return m.Fragment.SubRoute
}
