package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trafficscope/trafficscope/pkg/recommend"
)

const namespace = "trafficscope"

// Metrics holds the Prometheus collectors for one CLI invocation. They are
// registered on a private registry and written out as a node_exporter
// textfile rather than served.
type Metrics struct {
	registry *prometheus.Registry

	SegmentsAnalysed prometheus.Counter
	FeaturesSkipped  prometheus.Counter
	LastRunTimestamp prometheus.Gauge

	SegmentsByTier  *prometheus.CounterVec // labels: tier={T1,T2,T3,T4}
	Recommendations *prometheus.CounterVec // labels: strength={Minor,Medium,Major}
	SeverityScore   prometheus.Histogram
	RecommendedCost prometheus.Counter
}

// NewMetrics creates all run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SegmentsAnalysed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_analysed_total",
			Help:      "Total road segments scored.",
		}),
		FeaturesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_skipped_total",
			Help:      "GeoJSON features rejected for missing or malformed properties.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed analysis run.",
		}),
		SegmentsByTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_by_tier_total",
			Help:      "Segments analysed by severity tier.",
		}, []string{"tier"}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommended actions by strength group.",
		}, []string{"strength"}),
		SeverityScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "severity_score",
			Help:      "Distribution of segment severity scores.",
			Buckets:   []float64{30, 50, 70, 85, 100, 115, 130, 150, 180},
		}),
		RecommendedCost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommended_cost_total",
			Help:      "Sum of the cost of all recommended actions.",
		}),
	}

	m.registry.MustRegister(
		m.SegmentsAnalysed,
		m.FeaturesSkipped,
		m.LastRunTimestamp,
		m.SegmentsByTier,
		m.Recommendations,
		m.SeverityScore,
		m.RecommendedCost,
	)

	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records every report in run.
func (m *Metrics) ObserveRun(run *recommend.Run) {
	for _, rep := range run.Reports {
		m.SegmentsAnalysed.Inc()
		m.SegmentsByTier.WithLabelValues(rep.Tier.String()).Inc()
		m.SeverityScore.Observe(rep.SeverityScore)
		if s := rep.RecommendedAction.StrengthLabel; s != "" {
			m.Recommendations.WithLabelValues(string(s)).Inc()
		}
		m.RecommendedCost.Add(rep.RecommendedAction.Cost.InexactFloat64())
	}
	m.LastRunTimestamp.Set(float64(run.CreatedAt.Unix()))
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
