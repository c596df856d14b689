// Package metrics holds the prometheus collectors of the site.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Submissions counts settled form submissions by form and final status.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verein_submissions_total",
		Help: "Total number of settled form submissions",
	}, []string{"form", "status"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "verein_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

func ObserveSubmission(form, status string) {
	Submissions.WithLabelValues(form, status).Inc()
}

func ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
