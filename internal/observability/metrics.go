package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for next-capture estimation.
type Metrics struct {
	Estimates *prometheus.CounterVec // labels: outcome={estimated,no_data,<error kind>}

	// Imagery API metrics.
	APIRequests *prometheus.CounterVec // labels: outcome={success,<error kind>}
	APIDuration prometheus.Histogram

	CaptureSetSize prometheus.Histogram
	LastEstimate   prometheus.Gauge
}

// NewMetrics creates the estimator metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flyby",
			Name:      "estimates_total",
			Help:      "Estimate calls by outcome or failure kind.",
		}, []string{"outcome"}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flyby",
			Name:      "api_requests_total",
			Help:      "Imagery assets API requests by outcome.",
		}, []string{"outcome"}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flyby",
			Name:      "api_duration_seconds",
			Help:      "Imagery assets API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CaptureSetSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flyby",
			Name:      "capture_set_size",
			Help:      "Number of archived captures per estimated coordinate.",
			Buckets:   []float64{2, 5, 10, 25, 50, 100, 250, 500},
		}),
		LastEstimate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flyby",
			Name:      "last_estimate_timestamp_seconds",
			Help:      "Unix time of the last successful estimate.",
		}),
	}

	reg.MustRegister(
		m.Estimates,
		m.APIRequests,
		m.APIDuration,
		m.CaptureSetSize,
		m.LastEstimate,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
