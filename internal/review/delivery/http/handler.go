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

	"github.com/cedarmart/commerce/internal/review/domain"
	"github.com/cedarmart/commerce/internal/review/usecase/command"
	"github.com/cedarmart/commerce/internal/review/usecase/query"
)

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	createHandler *command.CreateReviewHandler
	updateHandler *command.UpdateReviewHandler
	deleteHandler *command.DeleteReviewHandler

	listHandler *query.ListReviewsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	reviewsPosted  prometheus.Counter
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(uow domain.UnitOfWork, reviews domain.ReviewRepository) *ReviewHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_service_requests_total",
			Help: "Total number of requests to review endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_service_request_duration_seconds",
			Help:    "Duration of review requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reviewsPosted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "review_service_reviews_posted_total",
			Help: "Total number of reviews posted",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(reviewsPosted)

	return &ReviewHandler{
		createHandler:  command.NewCreateReviewHandler(uow),
		updateHandler:  command.NewUpdateReviewHandler(uow),
		deleteHandler:  command.NewDeleteReviewHandler(uow),
		listHandler:    query.NewListReviewsHandler(reviews),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		reviewsPosted:  reviewsPosted,
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
func (h *ReviewHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListReviews handles GET /reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var productID uint
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}
		productID = uint(parsed)
	}

	reviews, err := h.listHandler.Handle(query.ListReviewsQuery{ProductID: productID})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, reviews)
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID uint   `json:"product_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.createHandler.Handle(r.Context(), command.CreateReviewCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.reviewsPosted.Inc()

	h.respondJSON(w, http.StatusCreated, review)
}

// UpdateReview handles PUT /reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	reviewID, err := h.pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var req struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.updateHandler.Handle(r.Context(), command.UpdateReviewCommand{
		UserID:   userID,
		ReviewID: reviewID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	reviewID, err := h.pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteReviewCommand{
		UserID:   userID,
		ReviewID: reviewID,
	}); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}

func (h *ReviewHandler) pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

// respondJSON sends a JSON response
func (h *ReviewHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ReviewHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all review routes
func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reviews", h.metricsMiddleware("/reviews", h.ListReviews)).Methods("GET")
	router.HandleFunc("/reviews", h.metricsMiddleware("/reviews", middleware.Auth(h.CreateReview))).Methods("POST")
	router.HandleFunc("/reviews/{id}", h.metricsMiddleware("/reviews/{id}", middleware.Auth(h.UpdateReview))).Methods("PUT")
	router.HandleFunc("/reviews/{id}", h.metricsMiddleware("/reviews/{id}", middleware.Auth(h.DeleteReview))).Methods("DELETE")
}
