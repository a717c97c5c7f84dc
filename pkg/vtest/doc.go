// Package vtest provides testing helpers for routers and route templates.
//
// # Recording controllers
//
// A Recorder stands in for a controller and remembers every invocation:
//
//	rec := vtest.NewRecorder()
//	r := router.New()
//	r.Register("home", router.RouteDef{Path: "/", Template: home, Controller: rec.Controller()})
//
//	vtest.MustDispatch(t, r, "#/", target)
//	call := rec.Last()
//	vtest.ExpectHTMLContains(t, call.HTML, "Welcome")
//
// # Render assertions
//
// The Expect helpers render a node and check the markup:
//
//	vtest.ExpectContains(t, route.Template(), "Welcome")
//	vtest.ExpectElement(t, route.Template(), "section")
//	vtest.ExpectAttribute(t, route.Template(), "data-route", "home")
package vtest
