package vtest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// Call is one recorded controller invocation.
type Call struct {
	Target   router.Target
	SubRoute string

	// HTML is the template rendered at call time, or "" for a nil template.
	HTML string
}

// Recorder records controller invocations. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Controller returns a controller that records into r.
func (r *Recorder) Controller() router.ControllerFunc {
	return func(target router.Target, template router.TemplateFunc, subRoute string) {
		call := Call{Target: target, SubRoute: subRoute}
		if template != nil {
			call.HTML = RenderToString(template())
		}
		r.mu.Lock()
		r.calls = append(r.calls, call)
		r.mu.Unlock()
	}
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Last returns the most recent call, or the zero Call.
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}

// Reset forgets all calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// MustDispatch dispatches hash to target and fails the test on error or
// when nothing matched.
//
// Example:
//
//	route := vtest.MustDispatch(t, r, "#/users/show/42", el)
//	if route.Name != "profile" { ... }
func MustDispatch(t testing.TB, r *router.Router, hash string, target router.Target) *router.Route {
	t.Helper()
	route, ok, err := r.Dispatch(context.Background(), hash, target)
	if err != nil {
		t.Fatalf("Dispatch(%q) error: %v", hash, err)
	}
	if !ok {
		t.Fatalf("Dispatch(%q) matched nothing", hash)
	}
	return route
}

// RenderToString renders node and returns the HTML, or "" on error.
//
// Example:
//
//	html := vtest.RenderToString(route.Template())
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	ExpectHTMLContains(t, RenderToString(node), expected)
}

// ExpectHTMLContains is ExpectContains for already rendered markup.
func ExpectHTMLContains(t testing.TB, html, expected string) {
	t.Helper()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
