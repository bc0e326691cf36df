package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels used across counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
	OutcomePartial = "partial"
)

// RunMetrics collects the counters of a single dashboard run. A CLI has no scrape
// endpoint, so the registry is flushed to a node-exporter textfile at the end of the run.
type RunMetrics struct {
	registry *prometheus.Registry

	FetchTotal       *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	ArchiveTotal     *prometheus.CounterVec
	CitiesTotal      *prometheus.CounterVec
	LastRunTimestamp prometheus.Gauge
}

// NewRunMetrics registers the run collectors on a private registry.
func NewRunMetrics(namespace string) *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &RunMetrics{
		registry: reg,
		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_total",
				Help:      "Weather API fetches by data kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Weather API fetch latency in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"kind"},
		),
		ArchiveTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "archive_writes_total",
				Help:      "Archive writes by data kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		CitiesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cities_total",
				Help:      "Cities processed by outcome",
			},
			[]string{"outcome"},
		),
		LastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last run finished",
			},
		),
	}
}

// ObserveFetch records one upstream call.
func (m *RunMetrics) ObserveFetch(kind, outcome string, elapsed time.Duration) {
	m.FetchTotal.WithLabelValues(kind, outcome).Inc()
	m.FetchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveArchive records one archive write attempt.
func (m *RunMetrics) ObserveArchive(kind, outcome string) {
	m.ArchiveTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveCity records the outcome of a whole city.
func (m *RunMetrics) ObserveCity(outcome string) {
	m.CitiesTotal.WithLabelValues(outcome).Inc()
}

// MarkFinished stamps the completion time.
func (m *RunMetrics) MarkFinished(at time.Time) {
	m.LastRunTimestamp.Set(float64(at.Unix()))
}

// Gatherer exposes the private registry.
func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the registry in text exposition format. An empty path is a no-op.
func (m *RunMetrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Gatherer())
}
