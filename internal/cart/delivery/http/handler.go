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

	"github.com/cedarmart/commerce/internal/cart/domain"
	"github.com/cedarmart/commerce/internal/cart/usecase/command"
	"github.com/cedarmart/commerce/internal/cart/usecase/query"
)

// CartHandler handles HTTP requests for carts
type CartHandler struct {
	addHandler    *command.AddItemHandler
	removeHandler *command.RemoveItemHandler
	updateHandler *command.UpdateItemHandler
	clearHandler  *command.ClearCartHandler

	getCartHandler *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCartHandler creates a new cart handler
func NewCartHandler(uow domain.UnitOfWork, carts domain.CartRepository) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_service_requests_total",
			Help: "Total number of requests to cart endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_service_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CartHandler{
		addHandler:     command.NewAddItemHandler(uow),
		removeHandler:  command.NewRemoveItemHandler(uow),
		updateHandler:  command.NewUpdateItemHandler(uow),
		clearHandler:   command.NewClearCartHandler(uow),
		getCartHandler: query.NewGetCartHandler(carts),
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
func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	cart, err := h.getCartHandler.Handle(query.GetCartQuery{UserID: userID})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Product added to cart",
		"cart_item": item,
	})
}

// RemoveItem handles POST /cart/remove
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Product removed from cart"})
}

// UpdateItem handles PUT /cart/update
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.updateHandler.Handle(r.Context(), command.UpdateItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Cart updated successfully",
		"cart_item": item,
	})
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.clearHandler.Handle(r.Context(), command.ClearCartCommand{UserID: userID}); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared successfully"})
}

// respondJSON sends a JSON response
func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *CartHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", middleware.Auth(h.GetCart))).Methods("GET")
	router.HandleFunc("/cart/add", h.metricsMiddleware("/cart/add", middleware.Auth(h.AddItem))).Methods("POST")
	router.HandleFunc("/cart/remove", h.metricsMiddleware("/cart/remove", middleware.Auth(h.RemoveItem))).Methods("POST")
	router.HandleFunc("/cart/update", h.metricsMiddleware("/cart/update", middleware.Auth(h.UpdateItem))).Methods("PUT")
	router.HandleFunc("/cart/clear", h.metricsMiddleware("/cart/clear", middleware.Auth(h.ClearCart))).Methods("DELETE")
}
