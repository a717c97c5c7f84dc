package router_test

import (
	"context"
	"fmt"

	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

func ExampleRouter_Dispatch() {
	show := func(target router.Target, template router.TemplateFunc, subRoute string) {
		fmt.Printf("%s: %s [%s]\n", target, template().TextContent(), subRoute)
	}

	r := router.New()
	r.RegisterRoutes(router.Routes{
		"home": {
			Path:       "/",
			Template:   func() *vdom.VNode { return vdom.Text("welcome") },
			Controller: show,
		},
		"user": {
			Path:       "/users/show",
			Template:   func() *vdom.VNode { return vdom.Text("user profile") },
			Controller: show,
		},
	})

	ctx := context.Background()
	r.Dispatch(ctx, "#/users/show/42", "main")
	r.Dispatch(ctx, "#/nowhere", "main")

	route, ok, err := r.Dispatch(ctx, "#/users/show/42", nil)
	fmt.Println(route == nil, ok, err)

	// Output:
	// main: user profile [42]
	// main: welcome []
	// true false <nil>
}
