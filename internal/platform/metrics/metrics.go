// Package metrics exposes the service's Prometheus collectors and the Gin
// instrumentation middleware.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitfair_http_requests_total",
			Help: "HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitfair_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DebtsSettledTotal counts debt records transitioned to SETTLED.
	DebtsSettledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "splitfair_debts_settled_total",
		Help: "Debt records settled, single and batch combined.",
	})

	// AllocationErrorsTotal counts expense allocations rejected by the engine.
	AllocationErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "splitfair_allocation_errors_total",
		Help: "Share allocations rejected for validation or reconciliation errors.",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, DebtsSettledTotal, AllocationErrorsTotal)
}

// RequestMetrics instruments every request with a counter and a latency
// histogram, labeled by route template rather than raw path to bound cardinality.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
