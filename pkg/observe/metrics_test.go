package observe

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/router"
)

func newTestRouter(obs ...router.Observer) *router.Router {
	noop := func(router.Target, router.TemplateFunc, string) {}
	r := router.New(router.WithObserver(obs...), router.WithStrictSegments())
	r.RegisterRoutes(router.Routes{
		"home":  {Path: "/", Controller: noop},
		"users": {Path: "/users", Controller: noop},
	})
	return r
}

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	r := newTestRouter(m)
	ctx := context.Background()

	r.Dispatch(ctx, "#/users", "target")
	r.Dispatch(ctx, "#/users", "target")
	r.Dispatch(ctx, "#/missing", "target")
	r.Dispatch(ctx, "#/users", nil)
	r.Dispatch(ctx, "#/a/b/c/d", "target")

	tests := []struct {
		route, outcome string
		want           float64
	}{
		{"users", "matched", 2},
		{"home", "fallback", 1},
		{"none", "no_target", 1},
		{"none", "failed", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.dispatchTotal.WithLabelValues(tt.route, tt.outcome))
		if got != tt.want {
			t.Errorf("dispatch_total{%s,%s} = %v, want %v", tt.route, tt.outcome, got, tt.want)
		}
	}

	if got := testutil.ToFloat64(m.dispatchErrors.WithLabelValues("too_many_segments")); got != 1 {
		t.Errorf("dispatch_errors_total{too_many_segments} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.dispatchDuration); got != 3 {
		t.Errorf("duration series = %d, want 3 (users, home, none)", got)
	}
}

func TestMetricsSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sessionsTotal); got != 2 {
		t.Errorf("sessions_total = %v, want 2", got)
	}
}

func TestMetricsRegisteredNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithSubsystem("nav"))
	m.Observe(context.Background(), router.Event{Route: "home", Outcome: router.OutcomeMatched})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "hashroute_nav_dispatch_total" {
			found = true
		}
	}
	if !found {
		t.Error("hashroute_nav_dispatch_total not registered")
	}
}

func TestMetricsCustomErrorType(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithErrorType(func(error) string { return "custom" }))
	m.Observe(context.Background(), router.Event{Outcome: router.OutcomeFailed, Err: errors.New("x")})

	if got := testutil.ToFloat64(m.dispatchErrors.WithLabelValues("custom")); got != 1 {
		t.Errorf("dispatch_errors_total{custom} = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{router.ErrNoDefaultRoute, "no_default_route"},
		{fragment.ErrTooManySegments, "too_many_segments"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
