// Package metrics holds the Prometheus collectors exposed at GET /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests counts requests by method, chi route pattern and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "petak_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "petak_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// AwardsComputed counts award computations that missed the cache, by period mode.
var AwardsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "petak_awards_computed_total",
	Help: "Award computations by period mode.",
}, []string{"mode"})

var AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "petak_admin_logins_total",
	Help: "Admin login attempts by result.",
}, []string{"result"})

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one finished request. route should be the router
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
