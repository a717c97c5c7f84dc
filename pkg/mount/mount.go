// Package mount provides a concrete render target and stock controllers.
package mount

import (
	"sync"

	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// Element is an insertion point identified by its DOM id. It keeps the HTML
// most recently rendered into it.
type Element struct {
	ID string

	mu       sync.RWMutex
	html     string
	subRoute string
	renders  int
	err      error
}

// NewElement creates an empty Element.
func NewElement(id string) *Element {
	return &Element{ID: id}
}

// Snapshot is a consistent view of an Element.
type Snapshot struct {
	ID       string
	HTML     string
	SubRoute string
	Renders  int
	Err      error
}

// Snapshot returns the element's current state.
func (e *Element) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		ID:       e.ID,
		HTML:     e.html,
		SubRoute: e.subRoute,
		Renders:  e.renders,
		Err:      e.err,
	}
}

// HTML returns the element's inner HTML.
func (e *Element) HTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.html
}

// Renders returns how many times a controller rendered into the element.
func (e *Element) Renders() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.renders
}

// Node returns the element as a VNode with its current content.
func (e *Element) Node() *vdom.VNode {
	return vdom.Div(vdom.ID(e.ID), vdom.Raw(e.HTML()))
}

func (e *Element) write(html, subRoute string, appendHTML bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renders++
	e.subRoute = subRoute
	e.err = err
	if err != nil {
		return
	}
	if appendHTML {
		e.html += html
	} else {
		e.html = html
	}
}

var renderer = render.NewRenderer(render.RendererConfig{})

// Replace renders the template and replaces the element's content.
// Targets that are not *Element are ignored.
func Replace(target router.Target, template router.TemplateFunc, subRoute string) {
	renderInto(target, template, subRoute, false)
}

// Append renders the template after the element's existing content.
// Targets that are not *Element are ignored.
func Append(target router.Target, template router.TemplateFunc, subRoute string) {
	renderInto(target, template, subRoute, true)
}

func renderInto(target router.Target, template router.TemplateFunc, subRoute string, appendHTML bool) {
	el, ok := target.(*Element)
	if !ok || el == nil {
		return
	}
	var node *vdom.VNode
	if template != nil {
		node = template()
	}
	html, err := renderer.RenderToString(node)
	el.write(html, subRoute, appendHTML, err)
}

// Controllers returns the stock controllers by name.
func Controllers() map[string]router.ControllerFunc {
	return map[string]router.ControllerFunc{
		"replace": Replace,
		"append":  Append,
	}
}
