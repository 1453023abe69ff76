package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enconapp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enconapp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "enconapp_http_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"method"},
	)

	chatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enconapp_chat_turns_total",
			Help: "Total number of completed conversation turns",
		},
		[]string{"level"},
	)

	translationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enconapp_translations_total",
			Help: "Total number of completed translations",
		},
	)

	modelRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enconapp_model_request_duration_seconds",
			Help:    "Language model request latency in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)

// Metrics creates an HTTP metrics middleware
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		httpActiveRequests.WithLabelValues(method).Inc()
		defer httpActiveRequests.WithLabelValues(method).Dec()

		start := time.Now()
		err := c.Next()

		// Route pattern, not the raw path, to keep label cardinality bounded.
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// RecordChatTurn counts a completed conversation turn
func RecordChatTurn(level string) {
	chatTurnsTotal.WithLabelValues(level).Inc()
}

// RecordTranslation counts a completed translation
func RecordTranslation() {
	translationsTotal.Inc()
}

// ObserveModelRequest records the latency of one language model call
func ObserveModelRequest(operation string, duration time.Duration) {
	modelRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
