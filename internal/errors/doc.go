// Package errors provides coded, structured errors for hashroute.
//
// Library packages return plain sentinel errors wrapped with context.
// At the edges (CLI, server replies, metrics labels) Classify maps them to
// an *Error carrying a stable code, a category and a hint:
//
//	err := errors.Classify(routerErr)
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E001: No route matched and no default route is registered
//	//
//	//   The hash did not match any registered path and there is no route
//	//   registered at "/" to fall back to.
//	//
//	//   Hint: Register a route with Path "/"
//
// # Codes
//
//	E001-E009  routing
//	E010-E019  manifest
//	E020-E029  configuration
package errors
