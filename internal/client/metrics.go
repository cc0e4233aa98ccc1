package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "perfdash_upstream_requests_total",
		Help: "Requests sent to the performance API, by operation and response status.",
	}, []string{"operation", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "perfdash_upstream_request_duration_seconds",
		Help:    "Latency of performance API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// observe records one finished request. status 0 means a transport error.
func observe(op string, status int, started time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(op, label).Inc()
	upstreamDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}
