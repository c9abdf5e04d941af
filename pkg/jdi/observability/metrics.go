package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records jdi metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolution records a class resolution with the number of
	// resolvers invoked, its duration, and error status.
	RecordResolution(ctx context.Context, class string, invoked int, duration time.Duration, err error)

	// RecordDefinition records a class definition.
	RecordDefinition(ctx context.Context, class string)

	// RecordConstruction records an object construction.
	RecordConstruction(ctx context.Context, class string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolutions       metric.Int64Counter
	resolverCalls     metric.Int64Counter
	resolutionLatency metric.Float64Histogram
	resolutionErrors  metric.Int64Counter
	definitions       metric.Int64Counter
	constructions     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("jdi")

	resolutions, err := meter.Int64Counter("jdi.resolve.count",
		metric.WithDescription("Number of class resolutions"),
	)
	if err != nil {
		return nil, err
	}

	resolverCalls, err := meter.Int64Counter("jdi.resolve.resolver_calls",
		metric.WithDescription("Number of resolver invocations"),
	)
	if err != nil {
		return nil, err
	}

	resolutionLatency, err := meter.Float64Histogram("jdi.resolve.latency_ms",
		metric.WithDescription("Class resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	resolutionErrors, err := meter.Int64Counter("jdi.resolve.errors",
		metric.WithDescription("Number of failed class resolutions"),
	)
	if err != nil {
		return nil, err
	}

	definitions, err := meter.Int64Counter("jdi.class.definitions",
		metric.WithDescription("Number of class definitions"),
	)
	if err != nil {
		return nil, err
	}

	constructions, err := meter.Int64Counter("jdi.object.constructions",
		metric.WithDescription("Number of objects constructed"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:       resolutions,
		resolverCalls:     resolverCalls,
		resolutionLatency: resolutionLatency,
		resolutionErrors:  resolutionErrors,
		definitions:       definitions,
		constructions:     constructions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordResolution records a class resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, class string, invoked int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("class", class),
		attribute.Bool("success", err == nil),
	)

	m.resolutions.Add(ctx, 1, attrs)
	m.resolverCalls.Add(ctx, int64(invoked), attrs)
	m.resolutionLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.resolutionErrors.Add(ctx, 1, attrs)
	}
}

// RecordDefinition records a class definition.
func (m *otelMetrics) RecordDefinition(ctx context.Context, class string) {
	m.definitions.Add(ctx, 1, metric.WithAttributes(attribute.String("class", class)))
}

// RecordConstruction records an object construction.
func (m *otelMetrics) RecordConstruction(ctx context.Context, class string) {
	m.constructions.Add(ctx, 1, metric.WithAttributes(attribute.String("class", class)))
}
