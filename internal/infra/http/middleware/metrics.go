package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	modalViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_magnet_views_total",
			Help: "Total number of times the lead magnet modal was opened",
		},
	)

	leadsCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads captured",
		},
	)

	deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_deliveries_total",
			Help: "Total number of guide deliveries by result",
		},
		[]string{"result"},
	)

	storageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_errors_total",
			Help: "Total number of widget storage errors degraded to defaults",
		},
		[]string{"op"},
	)

	analyticsEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_consumed_total",
			Help: "Total number of analytics events consumed from the queue",
		},
		[]string{"event"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps session ids out of the label set.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func RecordModalView() {
	modalViews.Inc()
}

func RecordLeadCaptured() {
	leadsCaptured.Inc()
}

// RecordDelivery counts a delivery attempt; result is "sent", "demo" or "failed".
func RecordDelivery(result string) {
	deliveries.WithLabelValues(result).Inc()
}

func RecordStorageError(op string) {
	storageErrors.WithLabelValues(op).Inc()
}

func RecordAnalyticsEvent(event string) {
	analyticsEvents.WithLabelValues(event).Inc()
}
