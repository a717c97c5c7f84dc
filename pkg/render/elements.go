package render

import "github.com/vango-dev/hashroute/pkg/vdom"

// isVoidElement returns true if the tag has no closing tag.
func isVoidElement(tag string) bool {
	return vdom.IsVoidElement(tag)
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"br":     true,
	"code":   true,
	"em":     true,
	"i":      true,
	"small":  true,
	"span":   true,
	"strong": true,
	"time":   true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are rendered as a bare attribute name when true.
var booleanAttrs = map[string]bool{
	"async":    true,
	"checked":  true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
	"inert":    true,
	"open":     true,
	"readonly": true,
	"required": true,
	"selected": true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
