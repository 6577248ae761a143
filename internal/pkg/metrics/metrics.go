package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shareit_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_bookings_created_total",
		Help: "Bookings created in WAITING status",
	})

	bookingDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_booking_decisions_total",
		Help: "Owner decisions on waiting bookings",
	}, []string{"status"})

	commentsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_comments_added_total",
		Help: "Comments accepted by the eligibility gate",
	})

	userCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_user_cache_lookups_total",
		Help: "Directory user cache lookups by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func BookingCreated() {
	bookingsCreated.Inc()
}

func BookingDecided(status string) {
	bookingDecisions.WithLabelValues(status).Inc()
}

func CommentAdded() {
	commentsAdded.Inc()
}

// UserCacheLookup records "hit", "miss" or "error".
func UserCacheLookup(result string) {
	userCacheLookups.WithLabelValues(result).Inc()
}
