package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cedarmart/commerce/pkg/apperrors"
	"github.com/cedarmart/commerce/pkg/middleware"

	"github.com/cedarmart/commerce/internal/audit/domain"
	"github.com/cedarmart/commerce/internal/audit/usecase/query"
)

// AuditHandler exposes the activity log to administrators
type AuditHandler struct {
	listHandler *query.ListActivityHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(logs domain.ActivityLogRepository) *AuditHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_service_requests_total",
			Help: "Total number of requests to audit endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_service_request_duration_seconds",
			Help:    "Duration of audit requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &AuditHandler{
		listHandler:    query.NewListActivityHandler(logs),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *AuditHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListActivity handles GET /admin/activity_logs
func (h *AuditHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(query.ListActivityQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// respondJSON sends a JSON response
func (h *AuditHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *AuditHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all audit routes
func (h *AuditHandler) RegisterRoutes(router *mux.Router) {
	superAdmin := middleware.RequireRoles()

	router.HandleFunc("/admin/activity_logs", h.metricsMiddleware("/admin/activity_logs", superAdmin(h.ListActivity))).Methods("GET")
}
