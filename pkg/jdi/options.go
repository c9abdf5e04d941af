package jdi

import (
	"log/slog"

	"github.com/randalmurphal/jdi/pkg/jdi/observability"
)

// runtimeConfig holds configuration for a Runtime.
type runtimeConfig struct {
	logger      *slog.Logger
	runID       string
	metrics     observability.MetricsRecorder
	spanManager observability.SpanManager
}

// defaultRuntimeConfig returns a config with observability disabled.
func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		logger:      slog.Default(),
		metrics:     observability.NoopMetrics{},
		spanManager: observability.NoopSpanManager{},
	}
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

// WithLogger sets the logger for resolution events.
// The logger is enriched with the run ID.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runtimeConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRunID sets the run identifier. Default: a random UUID.
func WithRunID(runID string) Option {
	return func(c *runtimeConfig) {
		c.runID = runID
	}
}

// WithMetrics enables OpenTelemetry metrics for resolution, definition,
// and construction. Default: disabled.
func WithMetrics(enabled bool) Option {
	return func(c *runtimeConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder sets a specific metrics recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *runtimeConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables OpenTelemetry spans around resolution. Default: disabled.
func WithTracing(enabled bool) Option {
	return func(c *runtimeConfig) {
		if enabled {
			c.spanManager = observability.NewSpanManager()
		} else {
			c.spanManager = observability.NoopSpanManager{}
		}
	}
}
