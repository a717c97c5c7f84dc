package router

import (
	"context"
	"time"

	"github.com/vango-dev/hashroute/pkg/fragment"
)

// Outcome classifies a dispatch.
type Outcome string

const (
	OutcomeMatched  Outcome = "matched"
	OutcomeFallback Outcome = "fallback"
	OutcomeNoTarget Outcome = "no_target"
	OutcomeFailed   Outcome = "failed"
)

// Event describes one dispatch.
type Event struct {
	// Hash is the hash as given to Dispatch.
	Hash     string
	Fragment fragment.Fragment

	// Route and Path identify the dispatched route. Empty unless Outcome is
	// OutcomeMatched or OutcomeFallback.
	Route string
	Path  string

	Outcome Outcome

	// Invoked reports whether a controller ran.
	Invoked bool

	Start    time.Time
	Duration time.Duration
	Err      error
}

// Observer receives an Event after every dispatch.
// Observers run synchronously on the dispatching goroutine.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(ctx context.Context, ev Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }

// StartObserver is an Observer that is also told when a dispatch begins,
// before the route is resolved and before the controller runs. Dispatches
// without a target do not start. The returned context is passed to every
// observer's Observe for the same dispatch.
type StartObserver interface {
	Observer
	ObserveStart(ctx context.Context, ev Event) context.Context
}
