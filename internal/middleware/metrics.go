package middleware

import (
	"strconv"
	"time"

	"aviacao/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aviacao_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aviacao_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// TicketsSold counts tickets created by committed purchases
	TicketsSold = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aviacao_tickets_sold_total",
		Help: "Total tickets sold across all committed purchases.",
	})

	// CheckinsCompleted counts committed seat assignments
	CheckinsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aviacao_checkins_completed_total",
		Help: "Total completed check-ins.",
	})
)

// Metrics records per-request counters and latency. Routes are labeled
// by pattern (c.FullPath), not raw URL, to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RegisterDBStats exposes connection pool gauges for the given database
func RegisterDBStats(db *database.DB) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "aviacao_db_connections_open",
			Help: "Open connections in the database pool.",
		},
		func() float64 { return float64(db.Stats().OpenConnections) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "aviacao_db_connections_in_use",
			Help: "Connections currently in use.",
		},
		func() float64 { return float64(db.Stats().InUse) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "aviacao_db_connections_idle",
			Help: "Idle connections in the pool.",
		},
		func() float64 { return float64(db.Stats().Idle) },
	))
}
