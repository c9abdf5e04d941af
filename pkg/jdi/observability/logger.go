// Package observability provides structured logging, metrics, and tracing
// for jdi class resolution and page rendering.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with the run_id field, or nil for a nil logger.
func EnrichLogger(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("run_id", runID))
}

// LogResolveStart logs the start of a class resolution.
func LogResolveStart(logger *slog.Logger, class string, resolvers int) {
	if logger == nil {
		return
	}
	logger.Debug("class resolution starting",
		slog.String("class", class),
		slog.Int("resolvers", resolvers),
	)
}

// LogResolveComplete logs a successful class resolution.
func LogResolveComplete(logger *slog.Logger, class string, invoked int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("class resolution completed",
		slog.String("class", class),
		slog.Int("resolvers_invoked", invoked),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogResolveError logs a failed class resolution.
func LogResolveError(logger *slog.Logger, class string, err error, invoked int) {
	if logger == nil {
		return
	}
	logger.Error("class resolution failed",
		slog.String("class", class),
		slog.String("error", err.Error()),
		slog.Int("resolvers_invoked", invoked),
	)
}

// LogClassDefined logs a class definition.
func LogClassDefined(logger *slog.Logger, class string) {
	if logger == nil {
		return
	}
	logger.Debug("class defined",
		slog.String("class", class),
	)
}

// LogRedefinition logs a rejected attempt to define an existing class.
func LogRedefinition(logger *slog.Logger, class string) {
	if logger == nil {
		return
	}
	logger.Warn("class already defined",
		slog.String("class", class),
	)
}

// LogRenderComplete logs a completed page render.
func LogRenderComplete(logger *slog.Logger, contentType string, sizeBytes int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("page rendered",
		slog.String("content_type", contentType),
		slog.Int("size_bytes", sizeBytes),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRenderError logs a failed page render.
func LogRenderError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Error("page render failed",
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
