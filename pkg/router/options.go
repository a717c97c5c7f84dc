package router

import (
	"log/slog"

	"github.com/vango-dev/hashroute/pkg/location"
)

// Option configures a Router.
type Option func(*Router)

// WithSource sets where Route reads the current hash from.
func WithSource(src location.Source) Option {
	return func(r *Router) {
		if src != nil {
			r.source = src
		}
	}
}

// WithStrictSegments makes hashes with segments beyond the sub-route fail
// with fragment.ErrTooManySegments instead of ignoring them.
func WithStrictSegments() Option {
	return func(r *Router) {
		r.strict = true
	}
}

// WithLogger sets the logger. Dispatches are logged at debug level and
// fallbacks at info level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger.With("component", "router")
		}
	}
}

// WithObserver adds dispatch observers.
func WithObserver(obs ...Observer) Option {
	return func(r *Router) {
		for _, o := range obs {
			if o != nil {
				r.observers = append(r.observers, o)
			}
		}
	}
}
