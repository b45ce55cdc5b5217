package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	forumOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_operations_total",
			Help: "Total number of forum store operations",
		},
		[]string{"operation", "status", "service"},
	)

	chatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages processed",
		},
		[]string{"operation", "status", "service"},
	)

	assistantCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_calls_total",
			Help: "Total number of assistant generation calls",
		},
		[]string{"operation", "status", "service"},
	)

	assistantCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_call_duration_seconds",
			Help:    "Duration of assistant generation calls in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation", "service"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
			serviceName,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			serviceName,
		).Observe(duration)
	}
}

func RecordForumOperation(operation, status, serviceName string) {
	forumOperationsTotal.WithLabelValues(operation, status, serviceName).Inc()
}

func RecordChatOperation(operation, status, serviceName string) {
	chatMessagesTotal.WithLabelValues(operation, status, serviceName).Inc()
}

func RecordAssistantCall(operation, status, serviceName string, duration time.Duration) {
	assistantCallsTotal.WithLabelValues(operation, status, serviceName).Inc()
	assistantCallDuration.WithLabelValues(operation, serviceName).Observe(duration.Seconds())
}
