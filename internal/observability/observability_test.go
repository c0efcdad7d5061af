package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficscope/trafficscope/pkg/recommend"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("loaded", "records", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.EqualValues(t, 3, entry["records"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "debug", "text").Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func sampleRun() *recommend.Run {
	pred := 0.95
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC))
	return recommend.NewEngine(recommend.WithClock(clock)).AnalyzeAll([]segment.Record{
		{Name: "a", WidthMeters: 6, CurrentLoad: 0.9, PredictiveLoad: &pred, IsCrossroad: true, IsControlled: true,
			Weather: segment.WeatherSnowIce, Class: segment.ClassArterial},
		{Name: "b", WidthMeters: 12, CurrentLoad: 0.3, Class: segment.ClassLocal},
		{Name: "c", WidthMeters: 12, CurrentLoad: 0.2, Class: segment.ClassLocal},
	})
}

func TestObserveRun(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(sampleRun())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SegmentsAnalysed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SegmentsByTier.WithLabelValues("T1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SegmentsByTier.WithLabelValues("T4")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recommendations.WithLabelValues("Major")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Recommendations.WithLabelValues("Minor")))
	assert.Equal(t, 510000.0, testutil.ToFloat64(m.RecommendedCost))
	assert.Equal(t, float64(time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC).Unix()), testutil.ToFloat64(m.LastRunTimestamp))
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(sampleRun())
	m.FeaturesSkipped.Add(2)

	path := filepath.Join(t.TempDir(), "trafficscope.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "trafficscope_segments_analysed_total 3")
	assert.Contains(t, out, `trafficscope_segments_by_tier_total{tier="T1"} 1`)
	assert.Contains(t, out, "trafficscope_features_skipped_total 2")
	assert.Contains(t, out, "trafficscope_severity_score_bucket")
}

func TestNewMetricsIndependentRegistries(t *testing.T) {
	// each invocation gets its own registry, so repeated construction never panics
	a, b := NewMetrics(), NewMetrics()
	a.SegmentsAnalysed.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SegmentsAnalysed))
}
