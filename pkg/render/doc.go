// Package render converts route content (vdom.VNode trees) into HTML.
//
// It handles:
//
//   - HTML5 compliant element rendering
//   - Text and attribute escaping
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, hidden, etc.)
//   - Full page rendering with DOCTYPE, head, body for the app shell
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Title: "App",
//	    Body:  vdom.Main(vdom.ID("app")),
//	    Scripts: []render.ScriptTag{{Inline: clientJS}},
//	}
//	err := renderer.RenderPage(w, page)
package render
