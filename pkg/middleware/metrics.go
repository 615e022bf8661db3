package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kyc_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"service", "method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "kyc_http_request_duration_seconds",
		Help: "HTTP request latency by route",
		// verification runs several external calls in sequence
		Buckets: []float64{.025, .1, .25, .5, 1, 2, 4, 8, 15, 30},
	}, []string{"service", "method", "route"})

	uploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kyc_http_upload_bytes",
		Help:    "Request body size of uploads by route",
		Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6), // 16KiB .. 16MiB
	}, []string{"service", "route"})
)

// Metrics records request counts, latency and upload sizes per route
func Metrics(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method

		requestsTotal.WithLabelValues(serviceName, method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(serviceName, method, route).Observe(time.Since(start).Seconds())
		if n := c.Request.ContentLength; n > 0 {
			uploadBytes.WithLabelValues(serviceName, route).Observe(float64(n))
		}
	}
}
