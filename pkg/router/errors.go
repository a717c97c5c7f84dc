package router

import "errors"

// ErrNoDefaultRoute is returned when a hash matches no route and no route
// is registered at "/".
var ErrNoDefaultRoute = errors.New("no route matched and no default route registered")
