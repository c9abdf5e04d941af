package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a debug-level JSON logger and its output buffer.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// records decodes every JSON log line in buf.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	all := records(t, buf)
	require.NotEmpty(t, all)
	return all[len(all)-1]
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds run_id", func(t *testing.T) {
		logger, buf := newTestLogger()

		EnrichLogger(logger, "run-123").Info("test message")

		record := lastRecord(t, buf)
		assert.Equal(t, "run-123", record["run_id"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "run-123"))
	})
}

func TestLogResolveStart(t *testing.T) {
	logger, buf := newTestLogger()

	LogResolveStart(logger, "JDIMessage", 1)

	record := lastRecord(t, buf)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "class resolution starting", record["msg"])
	assert.Equal(t, "JDIMessage", record["class"])
	assert.Equal(t, float64(1), record["resolvers"]) // JSON decodes ints as float64
}

func TestLogResolveComplete(t *testing.T) {
	logger, buf := newTestLogger()

	LogResolveComplete(logger, "JDIMessage", 1, 0.25)

	record := lastRecord(t, buf)
	assert.Equal(t, "class resolution completed", record["msg"])
	assert.Equal(t, float64(1), record["resolvers_invoked"])
	assert.Equal(t, 0.25, record["duration_ms"])
}

func TestLogResolveError(t *testing.T) {
	logger, buf := newTestLogger()

	LogResolveError(logger, "Missing", errors.New("class Missing not found"), 2)

	record := lastRecord(t, buf)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "class resolution failed", record["msg"])
	assert.Equal(t, "Missing", record["class"])
	assert.Equal(t, "class Missing not found", record["error"])
	assert.Equal(t, float64(2), record["resolvers_invoked"])
}

func TestLogClassDefinedAndRedefinition(t *testing.T) {
	logger, buf := newTestLogger()

	LogClassDefined(logger, "JDIMessage")
	LogRedefinition(logger, "JDIMessage")

	all := records(t, buf)
	require.Len(t, all, 2)
	assert.Equal(t, "class defined", all[0]["msg"])
	assert.Equal(t, "WARN", all[1]["level"])
	assert.Equal(t, "class already defined", all[1]["msg"])
}

func TestLogRender(t *testing.T) {
	logger, buf := newTestLogger()

	LogRenderComplete(logger, "text/json", 17, 1.5)
	LogRenderError(logger, errors.New("boom"))

	all := records(t, buf)
	require.Len(t, all, 2)
	assert.Equal(t, "page rendered", all[0]["msg"])
	assert.Equal(t, "text/json", all[0]["content_type"])
	assert.Equal(t, float64(17), all[0]["size_bytes"])
	assert.Equal(t, "page render failed", all[1]["msg"])
	assert.Equal(t, "boom", all[1]["error"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogResolveStart(nil, "x", 0)
		LogResolveComplete(nil, "x", 0, 0)
		LogResolveError(nil, "x", errors.New("e"), 0)
		LogClassDefined(nil, "x")
		LogRedefinition(nil, "x")
		LogRenderComplete(nil, "", 0, 0)
		LogRenderError(nil, errors.New("e"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), float64(5))
}
