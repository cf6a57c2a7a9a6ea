package reentry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	stepDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reentry_step_duration_seconds",
			Help:    "Wall-clock duration of one engine step.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
	)

	stepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reentry_steps_total",
			Help: "Total number of completed engine steps.",
		},
	)

	satellitesTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reentry_satellites_tracked",
			Help: "Number of satellites currently tracked.",
		},
	)

	satellitesInvalid = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reentry_satellites_invalid",
			Help: "Number of tracked satellites marked invalid (diverged or decayed).",
		},
	)

	divergencesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reentry_integration_divergences_total",
			Help: "Total number of satellites isolated after numerical divergence.",
		},
	)
)

func init() {
	prometheus.MustRegister(stepDurationSeconds)
	prometheus.MustRegister(stepsTotal)
	prometheus.MustRegister(satellitesTracked)
	prometheus.MustRegister(satellitesInvalid)
	prometheus.MustRegister(divergencesTotal)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
