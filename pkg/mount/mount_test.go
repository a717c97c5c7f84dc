package mount

import (
	"context"
	"testing"

	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

func heading(s string) router.TemplateFunc {
	return func() *vdom.VNode { return vdom.H1(s) }
}

func TestReplace(t *testing.T) {
	el := NewElement("app")

	Replace(el, heading("One"), "")
	Replace(el, heading("Two"), "7")

	snap := el.Snapshot()
	if snap.HTML != "<h1>Two</h1>" {
		t.Errorf("HTML = %q", snap.HTML)
	}
	if snap.Renders != 2 || snap.SubRoute != "7" {
		t.Errorf("Renders = %d SubRoute = %q", snap.Renders, snap.SubRoute)
	}
}

func TestAppend(t *testing.T) {
	el := NewElement("log")

	Append(el, heading("a"), "")
	Append(el, heading("b"), "")

	if got := el.HTML(); got != "<h1>a</h1><h1>b</h1>" {
		t.Errorf("HTML = %q", got)
	}
}

func TestIgnoresOtherTargets(t *testing.T) {
	Replace("not an element", heading("x"), "")
	Replace((*Element)(nil), heading("x"), "")
}

func TestNilTemplate(t *testing.T) {
	el := NewElement("app")
	Replace(el, heading("x"), "")
	Replace(el, nil, "")

	if el.HTML() != "" || el.Renders() != 2 {
		t.Errorf("HTML = %q Renders = %d", el.HTML(), el.Renders())
	}
}

func TestNode(t *testing.T) {
	el := NewElement("app")
	Replace(el, heading("Hi"), "")

	node := el.Node()
	if node.Props["id"] != "app" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if node.TextContent() != "<h1>Hi</h1>" {
		t.Errorf("content = %q", node.TextContent())
	}
}

func TestControllersWithRouter(t *testing.T) {
	ctrl := Controllers()
	r := router.New()
	r.RegisterRoutes(router.Routes{
		"home": {Path: "/", Template: heading("Home"), Controller: ctrl["replace"]},
		"feed": {Path: "/feed/items", Template: heading("Item"), Controller: ctrl["append"]},
	})

	el := NewElement("app")
	ctx := context.Background()
	r.Dispatch(ctx, "#/", el)
	r.Dispatch(ctx, "#/feed/items/1", el)
	r.Dispatch(ctx, "#/feed/items/2", el)

	snap := el.Snapshot()
	if snap.HTML != "<h1>Home</h1><h1>Item</h1><h1>Item</h1>" {
		t.Errorf("HTML = %q", snap.HTML)
	}
	if snap.SubRoute != "2" {
		t.Errorf("SubRoute = %q, want 2", snap.SubRoute)
	}
}

func TestDispatchNilElement(t *testing.T) {
	calls := 0
	counting := func(target router.Target, template router.TemplateFunc, subRoute string) {
		calls++
		Replace(target, template, subRoute)
	}
	r := router.New()
	r.Register("home", router.RouteDef{Path: "/", Template: heading("Home"), Controller: counting})

	var el *Element
	route, ok, err := r.Dispatch(context.Background(), "#/", el)
	if route != nil || ok || err != nil {
		t.Errorf("Dispatch(nil *Element) = (%v, %v, %v), want (nil, false, nil)", route, ok, err)
	}
	if calls != 0 {
		t.Errorf("controller ran %d times for a nil element", calls)
	}
}
