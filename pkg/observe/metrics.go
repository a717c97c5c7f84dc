package observe

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/router"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hashroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// ErrorType maps a dispatch error to a low-cardinality label value.
	// Default: categorizeError
	ErrorType func(error) string
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithErrorType sets the function that labels dispatch errors.
func WithErrorType(fn func(error) string) MetricsOption {
	return func(c *MetricsConfig) {
		c.ErrorType = fn
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hashroute",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
		ErrorType: categorizeError,
	}
}

// Metrics records dispatch and session metrics.
//
// Metrics collected:
//   - hashroute_dispatch_total: dispatches by route and outcome
//   - hashroute_dispatch_duration_seconds: dispatch duration by route
//   - hashroute_dispatch_errors_total: failed dispatches by error type
//   - hashroute_active_sessions: open navigation sessions
//   - hashroute_sessions_total: navigation sessions opened
type Metrics struct {
	errorType func(error) string

	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	dispatchErrors   *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	sessionsTotal    prometheus.Counter
}

var _ router.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the dispatch metrics.
// It panics if the metrics are already registered with the registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.ErrorType == nil {
		config.ErrorType = categorizeError
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		errorType: config.ErrorType,

		dispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_total",
			Help:        "Total number of hash dispatches",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "outcome"}),

		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Dispatch duration in seconds, controller included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		dispatchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_errors_total",
			Help:        "Total number of failed dispatches",
			ConstLabels: config.ConstLabels,
		}, []string{"error_type"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open navigation sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_total",
			Help:        "Total number of navigation sessions opened",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Observe implements router.Observer.
func (m *Metrics) Observe(_ context.Context, ev router.Event) {
	route := ev.Route
	if route == "" {
		route = "none"
	}

	m.dispatchTotal.WithLabelValues(route, string(ev.Outcome)).Inc()
	if ev.Outcome == router.OutcomeNoTarget {
		return
	}
	m.dispatchDuration.WithLabelValues(route).Observe(ev.Duration.Seconds())
	if ev.Err != nil {
		m.dispatchErrors.WithLabelValues(m.errorType(ev.Err)).Inc()
	}
}

// SessionOpened records a new navigation session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

// SessionClosed records a navigation session ending.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// categorizeError keeps error labels low-cardinality.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, router.ErrNoDefaultRoute):
		return "no_default_route"
	case errors.Is(err, fragment.ErrTooManySegments):
		return "too_many_segments"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
