package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a test meter provider and returns its reader.
func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	t.Cleanup(func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	})
	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the counter total for datapoints whose class attribute matches.
func sumFor(t *testing.T, rm *metricdata.ResourceMetrics, name, class string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	require.NotNil(t, m, "metric %s not recorded", name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")

	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value("class"); ok && v.AsString() == class {
			total += dp.Value
		}
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordResolution(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("counts resolutions and resolver calls", func(t *testing.T) {
		m.RecordResolution(ctx, "JDIMessage", 1, 2*time.Millisecond, nil)

		rm := collectMetrics(t, reader)
		assert.Equal(t, int64(1), sumFor(t, rm, "jdi.resolve.count", "JDIMessage"))
		assert.Equal(t, int64(1), sumFor(t, rm, "jdi.resolve.resolver_calls", "JDIMessage"))

		hist := findMetric(rm, "jdi.resolve.latency_ms")
		require.NotNil(t, hist)
		_, ok := hist.Data.(metricdata.Histogram[float64])
		assert.True(t, ok, "Expected Histogram type")
	})

	t.Run("counts errors", func(t *testing.T) {
		m.RecordResolution(ctx, "Missing", 3, time.Millisecond, errors.New("not found"))

		rm := collectMetrics(t, reader)
		assert.Equal(t, int64(1), sumFor(t, rm, "jdi.resolve.errors", "Missing"))
		assert.Equal(t, int64(3), sumFor(t, rm, "jdi.resolve.resolver_calls", "Missing"))
	})
}

func TestRecordDefinitionAndConstruction(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordDefinition(ctx, "JDIMessage")
	m.RecordConstruction(ctx, "JDIMessage")
	m.RecordConstruction(ctx, "JDIMessage")

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumFor(t, rm, "jdi.class.definitions", "JDIMessage"))
	assert.Equal(t, int64(2), sumFor(t, rm, "jdi.object.constructions", "JDIMessage"))
}
