package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis service.
type Metrics struct {
	ObservationsLoaded *prometheus.CounterVec // labels: dataset={population,environment,movement}
	LoadErrors         prometheus.Counter

	AnalysisRuns     prometheus.Counter
	AnalysisFailures prometheus.Counter
	AnalysisDuration prometheus.Histogram

	GroupsMasked   prometheus.Counter
	ReportsWritten prometheus.Counter

	SitesRanked      prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatwalk",
			Name:      "observations_loaded_total",
			Help:      "Total observations loaded, by dataset.",
		}, []string{"dataset"}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatwalk",
			Name:      "load_errors_total",
			Help:      "Total dataset load failures.",
		}),
		AnalysisRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatwalk",
			Name:      "analysis_runs_total",
			Help:      "Total completed analysis runs.",
		}),
		AnalysisFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatwalk",
			Name:      "analysis_failures_total",
			Help:      "Total failed analysis runs.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatwalk",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete load-analyze-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		GroupsMasked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatwalk",
			Name:      "groups_masked_total",
			Help:      "Total aggregate groups suppressed by disclosure masking.",
		}),
		ReportsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatwalk",
			Name:      "reports_written_total",
			Help:      "Total report files written.",
		}),
		SitesRanked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatwalk",
			Name:      "sites_ranked",
			Help:      "Number of regions ranked in the latest run.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatwalk",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the latest successful run.",
		}),
	}

	prometheus.MustRegister(
		m.ObservationsLoaded,
		m.LoadErrors,
		m.AnalysisRuns,
		m.AnalysisFailures,
		m.AnalysisDuration,
		m.GroupsMasked,
		m.ReportsWritten,
		m.SitesRanked,
		m.LastRunTimestamp,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heatwalk", Name: "observations_loaded_total"}, []string{"dataset"}),
		LoadErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heatwalk", Name: "load_errors_total"}),
		AnalysisRuns:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heatwalk", Name: "analysis_runs_total"}),
		AnalysisFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heatwalk", Name: "analysis_failures_total"}),
		AnalysisDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "heatwalk", Name: "analysis_duration_seconds"}),
		GroupsMasked:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heatwalk", Name: "groups_masked_total"}),
		ReportsWritten:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heatwalk", Name: "reports_written_total"}),
		SitesRanked:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "heatwalk", Name: "sites_ranked"}),
		LastRunTimestamp:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "heatwalk", Name: "last_run_timestamp_seconds"}),
	}
}
