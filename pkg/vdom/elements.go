package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})

		case string:
			node.Children = append(node.Children, &VNode{
				Kind: KindText,
				Text: v,
			})
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
	}
	v.Props[a.Key] = a.Value
}

// Content sectioning elements

func Main(args ...any) *VNode    { return createElement("main", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }

// Text content elements

func Div(args ...any) *VNode { return createElement("div", args) }
func P(args ...any) *VNode   { return createElement("p", args) }
func Li(args ...any) *VNode  { return createElement("li", args) }
func Hr(args ...any) *VNode  { return createElement("hr", args) }

// Inline text semantics

func Span(args ...any) *VNode { return createElement("span", args) }
func Br(args ...any) *VNode   { return createElement("br", args) }
