package observability

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer returns the jdi tracer from the current global provider.
// It is looked up per span so a provider installed after init still applies.
func tracer() trace.Tracer {
	return otel.Tracer("jdi")
}

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span covering the resolution of one class.
	StartResolveSpan(ctx context.Context, runID, class string) (context.Context, trace.Span)

	// StartResolverSpan starts a span for a single resolver invocation.
	// It should be a child of the resolve span.
	StartResolverSpan(ctx context.Context, index int, class string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartResolveSpan(ctx context.Context, runID, class string) (context.Context, trace.Span) {
	return StartResolveSpan(ctx, runID, class)
}

func (m *otelSpanManager) StartResolverSpan(ctx context.Context, index int, class string) (context.Context, trace.Span) {
	return StartResolverSpan(ctx, index, class)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartResolveSpan starts a span for resolving class.
// Uses the global OTel tracer.
func StartResolveSpan(ctx context.Context, runID, class string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "jdi.resolve",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("class.name", class),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartResolverSpan starts a span for the resolver at index.
// Uses the global OTel tracer.
func StartResolverSpan(ctx context.Context, index int, class string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "jdi.resolver."+strconv.Itoa(index),
		trace.WithAttributes(
			attribute.Int("resolver.index", index),
			attribute.String("class.name", class),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
