// Package vdom provides the renderable content produced by route templates.
//
// A route's template function returns a *VNode tree. Controllers hand that
// tree to a renderer (see package render) or to any other consumer that
// knows how to insert it into a UI target.
//
// # Core Types
//
// VNode represents elements, text, fragments, components and raw HTML.
// Props holds element attributes and Attr is used to build them.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Section(Class("page"), ID("home"),
//	    H1(Text("Home")),
//	    P(Text("Welcome back.")),
//	)
package vdom
