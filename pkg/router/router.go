package router

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/location"
)

// Router holds the route table and dispatches hashes to controllers.
type Router struct {
	mu     sync.RWMutex
	routes map[string]Route

	source    location.Source
	strict    bool
	logger    *slog.Logger
	observers []Observer
}

// New creates a Router with an empty route table.
// Without WithSource, Route dispatches as if no hash were present.
func New(opts ...Option) *Router {
	r := &Router{
		routes: make(map[string]Route),
		source: location.Static(""),
		logger: slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterRoutes adds every entry of routes to the table, keyed by path.
// An existing entry at the same path is replaced. Entries of one call are
// applied in ascending name order, so when two of them share a path the
// lexically last name wins.
func (r *Router) RegisterRoutes(routes Routes) {
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	sort.Strings(names)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		r.insert(name, routes[name])
	}
}

// Register adds a single route to the table, replacing any route at the
// same path.
func (r *Router) Register(name string, def RouteDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(name, def)
}

func (r *Router) insert(name string, def RouteDef) {
	if prev, ok := r.routes[def.Path]; ok && prev.Name != name {
		r.logger.Debug("route replaced", "path", def.Path, "old", prev.Name, "new", name)
	}
	r.routes[def.Path] = Route{
		Name:       name,
		Path:       def.Path,
		Template:   def.Template,
		Controller: def.Controller,
	}
}

// Routes returns a copy of the route table keyed by path.
func (r *Router) Routes() map[string]Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Route, len(r.routes))
	for path, route := range r.routes {
		out[path] = route
	}
	return out
}

// Lookup returns the route registered at path.
func (r *Router) Lookup(path string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[path]
	if !ok {
		return nil, false
	}
	return &route, true
}

// Len returns the number of registered paths.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

// Resolve finds the route for hash without invoking anything.
// The base route is looked up first, then the route at "/".
func (r *Router) Resolve(hash string) (Match, error) {
	f := fragment.Parse(hash)
	m := Match{Fragment: f}

	if r.strict {
		if err := f.Strict(); err != nil {
			return m, fmt.Errorf("resolve %q: %w", hash, err)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if route, ok := r.routes[f.Base]; ok {
		m.Route = &route
		return m, nil
	}
	if route, ok := r.routes[fragment.Root]; ok {
		m.Route = &route
		m.Fallback = true
		return m, nil
	}
	return m, fmt.Errorf("resolve %q: %w", hash, ErrNoDefaultRoute)
}

// Route dispatches the hash currently reported by the router's source.
func (r *Router) Route(target Target) (*Route, bool, error) {
	return r.RouteContext(context.Background(), target)
}

// RouteContext is Route with a context for observers.
func (r *Router) RouteContext(ctx context.Context, target Target) (*Route, bool, error) {
	return r.Dispatch(ctx, r.source.Hash(), target)
}

// Dispatch resolves hash and invokes the matched controller with target,
// the route's template and the sub-route.
//
// A nil target, including a typed nil pointer, map, slice, func or chan,
// returns (nil, false, nil) and invokes nothing. A route
// without a controller is returned with true but nothing is invoked.
func (r *Router) Dispatch(ctx context.Context, hash string, target Target) (*Route, bool, error) {
	ev := Event{
		Hash:     hash,
		Fragment: fragment.Parse(hash),
		Start:    time.Now(),
	}

	if isNilTarget(target) {
		ev.Outcome = OutcomeNoTarget
		r.emit(ctx, ev)
		return nil, false, nil
	}

	ctx = r.start(ctx, ev)

	if err := ctx.Err(); err != nil {
		ev.Outcome = OutcomeFailed
		ev.Err = err
		r.emit(ctx, ev)
		return nil, false, err
	}

	m, err := r.Resolve(hash)
	if err != nil {
		ev.Outcome = OutcomeFailed
		ev.Err = err
		r.logger.Warn("dispatch failed", "hash", hash, "error", err)
		r.emit(ctx, ev)
		return nil, false, err
	}

	route := m.Route
	ev.Route = route.Name
	ev.Path = route.Path
	ev.Outcome = OutcomeMatched
	if m.Fallback {
		ev.Outcome = OutcomeFallback
		r.logger.Info("falling back to default route", "hash", hash, "base", m.Fragment.Base)
	}

	if route.Controller != nil {
		route.Controller(target, route.Template, m.Fragment.SubRoute)
		ev.Invoked = true
	}

	r.logger.Debug("dispatched",
		"hash", hash,
		"route", route.Name,
		"path", route.Path,
		"sub_route", m.Fragment.SubRoute,
		"invoked", ev.Invoked,
	)
	r.emit(ctx, ev)
	return route, true, nil
}

// start tells every StartObserver that a dispatch begins.
func (r *Router) start(ctx context.Context, ev Event) context.Context {
	for _, o := range r.observers {
		if s, ok := o.(StartObserver); ok {
			ctx = s.ObserveStart(ctx, ev)
		}
	}
	return ctx
}

func (r *Router) emit(ctx context.Context, ev Event) {
	if len(r.observers) == 0 {
		return
	}
	ev.Duration = time.Since(ev.Start)
	for _, o := range r.observers {
		o.Observe(ctx, ev)
	}
}

// isNilTarget reports whether target is nil or a nil reference value.
func isNilTarget(target Target) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
