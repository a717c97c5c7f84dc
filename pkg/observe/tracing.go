package observe

import (
	"context"

	"github.com/vango-dev/hashroute/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "hashroute"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "hashroute").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// Filter determines which dispatches to trace. It is called when the
	// dispatch starts, so only Hash, Fragment and Start are set.
	// If nil, every dispatch with a target is traced.
	Filter func(ev router.Event) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(ev router.Event) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = tp
	}
}

// WithDispatchFilter sets a filter for traced dispatches.
func WithDispatchFilter(filter func(ev router.Event) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev router.Event) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing records one span per dispatch. The span starts before the route
// is resolved and stays open while the controller runs.
type Tracing struct {
	config TracingConfig
	tracer trace.Tracer
}

var _ router.StartObserver = (*Tracing)(nil)

// spanKey carries the dispatch span of one Tracing in a context.
type spanKey struct{ t *Tracing }

// NewTracing creates a tracing observer.
//
// Configure the global provider in main() before dispatching:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	if config.Filter == nil {
		config.Filter = func(router.Event) bool { return true }
	}
	return &Tracing{
		config: config,
		tracer: config.TracerProvider.Tracer(config.TracerName),
	}
}

// ObserveStart implements router.StartObserver.
func (t *Tracing) ObserveStart(ctx context.Context, ev router.Event) context.Context {
	if !t.config.Filter(ev) {
		return ctx
	}
	ctx, span := t.tracer.Start(ctx, spanName(ev),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("hashroute.hash", ev.Hash),
			attribute.String("hashroute.base", ev.Fragment.Base),
		),
		trace.WithTimestamp(ev.Start),
	)
	return context.WithValue(ctx, spanKey{t}, span)
}

// Observe implements router.Observer. It finishes the span opened by
// ObserveStart. Events that did not start one, such as direct calls, get a
// span covering the event's start and duration.
func (t *Tracing) Observe(ctx context.Context, ev router.Event) {
	span, started := ctx.Value(spanKey{t}).(trace.Span)
	if !started {
		if ev.Outcome == router.OutcomeNoTarget || !t.config.Filter(ev) {
			return
		}
		_, span = t.tracer.Start(ctx, spanName(ev),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("hashroute.hash", ev.Hash),
				attribute.String("hashroute.base", ev.Fragment.Base),
			),
			trace.WithTimestamp(ev.Start),
		)
	}

	attrs := []attribute.KeyValue{
		attribute.String("hashroute.outcome", string(ev.Outcome)),
		attribute.Bool("hashroute.invoked", ev.Invoked),
	}
	if ev.Route != "" {
		attrs = append(attrs,
			attribute.String("hashroute.route", ev.Route),
			attribute.String("hashroute.path", ev.Path),
		)
	}
	if ev.Fragment.SubRoute != "" {
		attrs = append(attrs, attribute.String("hashroute.sub_route", ev.Fragment.SubRoute))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(ev)...)
	}

	span.SetName(spanName(ev))
	span.SetAttributes(attrs...)
	if ev.Err != nil {
		span.RecordError(ev.Err)
		span.SetStatus(codes.Error, ev.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(ev.Start.Add(ev.Duration)))
}

// spanName names the span after the matched route path. Unmatched and
// failed dispatches share one name.
func spanName(ev router.Event) string {
	if ev.Path == "" {
		return dispatchSpan
	}
	return dispatchSpan + " " + ev.Path
}

const dispatchSpan = "hashroute.dispatch"
