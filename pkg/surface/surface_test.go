package surface_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficscope/trafficscope/pkg/recommend"
	"github.com/trafficscope/trafficscope/pkg/segment"
	"github.com/trafficscope/trafficscope/pkg/surface"
)

func ptr(v float64) *float64 { return &v }

func sampleRun() *recommend.Run {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.February, 10, 7, 45, 0, 0, time.UTC))
	e := recommend.NewEngine(recommend.WithClock(clock))
	return e.AnalyzeAll([]segment.Record{
		{
			Name:           "Tverskaya",
			WidthMeters:    6,
			CurrentLoad:    0.9,
			PredictiveLoad: ptr(0.95),
			IsCrossroad:    true,
			IsControlled:   true,
			Weather:        segment.WeatherSnowIce,
			Class:          segment.ClassArterial,
		},
		{
			Name:           "Bolshaya Nikitskaya",
			WidthMeters:    12,
			CurrentLoad:    0.3,
			PredictiveLoad: ptr(0.3),
			Weather:        segment.WeatherNormal,
			Class:          segment.ClassLocal,
		},
	})
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, (&surface.TerminalRenderer{}).Render(&buf, sampleRun()))
	output := buf.String()

	// Header
	assert.Contains(t, output, "2 segments analysed")
	assert.Contains(t, output, "T1 Critical: 1")
	assert.Contains(t, output, "Recommended spend: 505000")

	// Panels
	assert.Contains(t, output, "Tier T1 (Critical), severity 180.0")
	assert.Contains(t, output, "Load (current/forecast): 0.90 / 0.95")
	assert.Contains(t, output, "Action: Intersection/interchange reconstruction")
	assert.Contains(t, output, "Action: Traffic-light phase optimization")
	assert.NotContains(t, output, "\033[", "expected no ANSI codes with NO_COLOR set")
}

func TestTerminalRenderer_NoSegments(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, (&surface.TerminalRenderer{}).Render(&buf, recommend.NewEngine().AnalyzeAll(nil)))
	assert.Contains(t, buf.String(), "No segments")
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		os.Unsetenv("NO_COLOR")
		t.Cleanup(func() { os.Setenv("NO_COLOR", v) })
	}

	var buf bytes.Buffer
	require.NoError(t, (&surface.TerminalRenderer{}).Render(&buf, sampleRun()))
	assert.Contains(t, buf.String(), "\033[31m", "expected red ANSI code for the critical tier")
}

func TestJSONRenderer(t *testing.T) {
	run := sampleRun()
	var buf bytes.Buffer
	require.NoError(t, (&surface.JSONRenderer{}).Render(&buf, run))

	var decoded struct {
		ID      string `json:"id"`
		Reports []struct {
			SegmentName string `json:"segment_name"`
			Tier        string `json:"tier"`
		} `json:"reports"`
		Summary struct {
			Total  int            `json:"total"`
			ByTier map[string]int `json:"by_tier"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, run.ID, decoded.ID)
	require.Len(t, decoded.Reports, 2)
	assert.Equal(t, "T1", decoded.Reports[0].Tier)
	assert.Equal(t, 2, decoded.Summary.Total)
	assert.Equal(t, 1, decoded.Summary.ByTier["T4"])
}

func TestMarkdownRenderer(t *testing.T) {
	md := surface.BuildMarkdown(sampleRun())

	for _, want := range []string{
		"## trafficscope: 2 segments analysed",
		"| :red_circle: T1 | Critical | 1 |",
		"| Tverskaya | 180.0 | T1 | 0.90 / 0.95 | Intersection/interchange reconstruction | 500000 |",
		"#### :blue_circle: Bolshaya Nikitskaya",
		"**Action: Traffic-light phase optimization**",
	} {
		assert.Contains(t, md, want)
	}
}

func TestMarkdownRendererEscapesNames(t *testing.T) {
	run := recommend.NewEngine().AnalyzeAll([]segment.Record{
		{Name: "Ring *north* | [km_5] <b>", WidthMeters: 9, CurrentLoad: 0.2},
	})
	md := surface.BuildMarkdown(run)

	escaped := `Ring \*north\* \| \[km\_5\] \<b\>`
	assert.Contains(t, md, "#### :blue_circle: "+escaped+"\n")
	assert.Contains(t, md, "| "+escaped+" | 20.0 |")
	assert.NotContains(t, md, "*north*")
	assert.NotContains(t, md, "<b>")
}

func TestHTMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.HTMLRenderer{}).Render(&buf, sampleRun()))
	out := buf.String()

	for _, want := range []string{
		"Segment analysis: Tverskaya",
		"border-left: 5px solid #CC0000",
		"background-color: #FFCCCC",
		"Tier T1: Critical",
		"Intersection/interchange reconstruction",
		"load reduced by 40%",
		"color: #DC143C",
	} {
		assert.Contains(t, out, want)
	}
}

func TestHTMLRendererEscapesNames(t *testing.T) {
	run := recommend.NewEngine().AnalyzeAll([]segment.Record{{Name: "<script>alert(1)</script>", WidthMeters: 9, CurrentLoad: 0.2}})

	var buf bytes.Buffer
	require.NoError(t, (&surface.HTMLRenderer{}).Render(&buf, run))
	assert.NotContains(t, buf.String(), "<script>", "segment name was not escaped")
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.CSVRenderer{}).Render(&buf, sampleRun()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "expected header + 2 rows")

	want := []string{"Tverskaya", "Arterial", "Snow/Ice", "2", "0.90", "0.95", "180.0", "T1", "Critical",
		"Intersection/interchange reconstruction", "Major", "500000", "40"}
	assert.Equal(t, want, rows[1])
}

func TestForFormat(t *testing.T) {
	for _, name := range surface.FormatNames() {
		r, err := surface.ForFormat(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r, name)
	}

	_, err := surface.ForFormat("JSON")
	assert.NoError(t, err, "format lookup should be case-insensitive")
	_, err = surface.ForFormat("pdf")
	assert.Error(t, err)

	f, err := surface.LookupFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, ".csv", f.Extension)
	assert.True(t, strings.HasPrefix(f.ContentType, "text/csv"))
}
