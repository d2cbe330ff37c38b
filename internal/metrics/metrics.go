package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointments_created_total",
		Help: "Total number of appointments created",
	})

	AppointmentsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointments_confirmed_total",
		Help: "Total number of appointments confirmed",
	})

	AppointmentsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointments_cancelled_total",
		Help: "Total number of appointments cancelled",
	})

	ConfirmationsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "confirmations_rejected_total",
		Help: "Total number of rejected confirmation attempts",
	}, []string{"reason"})

	ReceiptsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "receipts_issued_total",
		Help: "Total number of receipts issued",
	})

	InventoryDeductionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_deductions_total",
		Help: "Total number of inventory items deducted on confirmation",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// HTTPMiddleware records per-route request counts and latency.
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
