package diag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// LoggerSink writes each line as an info-level slog record whose message is
// the line itself.
type LoggerSink struct {
	Logger *slog.Logger
}

// NewLoggerSink returns a sink backed by logger, or slog.Default() if nil.
func NewLoggerSink(logger *slog.Logger) *LoggerSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggerSink{Logger: logger}
}

// Write implements Sink.
func (s *LoggerSink) Write(ctx context.Context, line string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if runID := RunIDFromContext(ctx); runID != "" {
		logger = logger.With(slog.String("run_id", runID))
	}
	logger.InfoContext(ctx, line)
	return nil
}

// WriterSink writes each line followed by a newline to an io.Writer,
// the way a process error log is written to stderr.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w, or os.Stderr if w is nil.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = os.Stderr
	}
	return &WriterSink{w: w}
}

// Write implements Sink.
func (s *WriterSink) Write(_ context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		return fmt.Errorf("write diag line: %w", err)
	}
	return nil
}

// MemorySink keeps lines in memory. Useful for tests.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write implements Sink.
func (s *MemorySink) Write(_ context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Lines returns a copy of the lines written so far, oldest first.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Reset drops all recorded lines.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Tee returns a sink that writes every line to all sinks in order.
// A failing sink does not stop the others; errors are joined.
func Tee(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return teeSink(filtered)
}

type teeSink []Sink

func (t teeSink) Write(ctx context.Context, line string) error {
	var errs []error
	for _, s := range t {
		if err := s.Write(ctx, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
