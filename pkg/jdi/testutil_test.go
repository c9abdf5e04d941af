package jdi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// timeline records stdout writes and diagnostic lines in the order they
// happen, so tests can assert on interleaving.
type timeline struct {
	mu     sync.Mutex
	events []string
}

func (tl *timeline) add(e string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.events = append(tl.events, e)
}

func (tl *timeline) Events() []string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	out := make([]string, len(tl.events))
	copy(out, tl.events)
	return out
}

// stdout returns a writer that records "stdout:<data>".
func (tl *timeline) stdout() *timelineWriter { return &timelineWriter{tl: tl} }

// sink returns a diag sink that records "diag:<line>".
func (tl *timeline) sink() *timelineSink { return &timelineSink{tl: tl} }

type timelineWriter struct{ tl *timeline }

func (w *timelineWriter) Write(p []byte) (int, error) {
	w.tl.add("stdout:" + string(p))
	return len(p), nil
}

type timelineSink struct{ tl *timeline }

func (s *timelineSink) Write(_ context.Context, line string) error {
	s.tl.add("diag:" + line)
	return nil
}

// newJSONLogger returns a debug-level JSON logger writing to buf.
func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// logRecords decodes every JSON log line in buf.
func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		records = append(records, m)
	}
	return records
}

// messages returns the msg field of every record.
func messages(records []map[string]any) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if msg, ok := r["msg"].(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
