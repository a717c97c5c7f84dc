package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/hashroute/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Styles contains inline CSS styles
	Styles []string

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Scripts are rendered at the end of the body
	Scripts []ScriptTag

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderPage renders a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	for _, script := range page.Scripts {
		if err := r.renderScriptTag(w, script); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

func (r *Renderer) renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "<script"); err != nil {
		return err
	}
	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"+script.Inline+"</script>\n"); err != nil {
		return err
	}
	return nil
}
