package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operational counters. Paths are caller-controlled so they are not used
// as labels (unbounded cardinality).
var (
	visitsTracked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "visittracker",
		Name:      "visits_tracked_total",
		Help:      "Total number of page visits recorded.",
	})
	statsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "visittracker",
		Name:      "stats_requests_total",
		Help:      "Total number of stats requests served.",
	})
	resetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "visittracker",
		Name:      "resets_total",
		Help:      "Total number of analytics resets.",
	})
)

// InitMetrics registers the counters with the default registry. Call once
// per process, from the entrypoint.
func InitMetrics() {
	prometheus.MustRegister(visitsTracked, statsServed, resetsTotal)
}

// MetricsHandler exposes the default registry in Prometheus text format
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
