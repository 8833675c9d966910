package metrics

import (
	"strconv"
	"time"

	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors:
//   - http_requests_total: requests by route, method and status
//   - http_request_duration_seconds: latency by route and method
//   - cookmastery_completions_total: completion outcomes by content kind and status
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	Completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cookmastery_completions_total", Help: "Completion requests by content kind and outcome."},
		[]string{"kind", "status"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, Completions)
}

// UnmatchedRoute labels requests that matched no route, so arbitrary
// paths never become series.
const UnmatchedRoute = "unmatched"

// Handler records request count and latency per matched route.
func Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := utils.StatusOf(c, err)
		route := c.Route().Path
		if route == "" || route == "/" {
			route = UnmatchedRoute
		}
		HTTPLatency.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		return err
	}
}

// Exposer serves the default registry in the Prometheus text format.
func Exposer() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
