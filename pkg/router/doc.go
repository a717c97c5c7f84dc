// Package router maps URL hash fragments to route handlers.
//
// A route pairs a template producer with a controller. Routes are registered
// by name and stored by path; registering the same path again replaces the
// earlier entry. Dispatching a hash parses it with package fragment, looks up
// the base route, falls back to the route registered at "/" and invokes the
// controller with the target, the template and the positional sub-route.
//
// # Usage
//
//	r := router.New(router.WithSource(loc))
//	r.RegisterRoutes(router.Routes{
//	    "home":  {Path: "/", Template: homeTemplate, Controller: mount.Replace},
//	    "users": {Path: "/users", Template: usersTemplate, Controller: mount.Replace},
//	})
//
//	route, ok, err := r.Route(target)
//
// # Hash layout
//
//	#/users              → /users
//	#/users/list         → /users           (the second segment alone is not a route)
//	#/users/list/42      → /users/list, sub-route "42"
//	#/users/list/42/more → /users/list, sub-route "42", "more" ignored
//
// WithStrictSegments rejects hashes with segments beyond the sub-route.
//
// # Missing targets
//
// A nil target is not an error. Dispatch returns no route and invokes
// nothing, whatever the hash. A matched route without a controller is still
// returned; only the invocation is skipped.
//
// # Concurrency
//
// A Router is safe for concurrent use. Dispatch runs the controller
// synchronously on the caller's goroutine and does not recover panics.
package router
