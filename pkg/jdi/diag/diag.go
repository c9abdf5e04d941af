// Package diag provides the write-only sinks that receive diagnostic trace
// lines, kept apart from a page's primary output.
//
// A Sink accepts one line per call. Which backend stores the line is a
// deployment choice: a slog logger, a plain writer such as stderr, an
// in-memory buffer for tests, or a SQLite table that persists across runs.
package diag

import (
	"context"
	"errors"
	"time"
)

// Sink receives diagnostic lines. Implementations must be safe for
// concurrent use.
type Sink interface {
	// Write appends one diagnostic line. The line has no trailing newline.
	Write(ctx context.Context, line string) error
}

// Record is a diagnostic line with the metadata persistent sinks keep.
type Record struct {
	ID        string
	RunID     string
	Seq       int
	Timestamp time.Time
	Line      string
}

// ErrSinkClosed indicates a write to a sink that has been closed.
var ErrSinkClosed = errors.New("diag sink closed")

type runIDKey struct{}

// WithRunID returns a context that tags diagnostic lines with runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext returns the run ID set by WithRunID, or "".
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Discard is a Sink that drops every line.
var Discard Sink = discard{}

type discard struct{}

func (discard) Write(context.Context, string) error { return nil }
