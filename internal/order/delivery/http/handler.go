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

	"github.com/cedarmart/commerce/internal/order/domain"
	"github.com/cedarmart/commerce/internal/order/usecase/command"
	"github.com/cedarmart/commerce/internal/order/usecase/query"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

// OrderHandler handles HTTP requests for orders and returns
type OrderHandler struct {
	createHandler       *command.CreateOrderHandler
	updateStatusHandler *command.UpdateStatusHandler
	deleteHandler       *command.DeleteOrderHandler
	returnItemHandler   *command.ReturnItemHandler
	updateReturnHandler *command.UpdateReturnHandler

	getOrderHandler    *query.GetOrderHandler
	listOrdersHandler  *query.ListOrdersHandler
	listReturnsHandler *query.ListReturnsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(uow domain.UnitOfWork, orders domain.OrderReader, publisher domain.EventPublisher) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_service_requests_total",
			Help: "Total number of requests to order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_service_request_duration_seconds",
			Help:    "Duration of order requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_service_orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)

	return &OrderHandler{
		createHandler:       command.NewCreateOrderHandler(uow, publisher),
		updateStatusHandler: command.NewUpdateStatusHandler(uow, publisher),
		deleteHandler:       command.NewDeleteOrderHandler(uow),
		returnItemHandler:   command.NewReturnItemHandler(uow),
		updateReturnHandler: command.NewUpdateReturnHandler(uow),
		getOrderHandler:     query.NewGetOrderHandler(orders),
		listOrdersHandler:   query.NewListOrdersHandler(orders),
		listReturnsHandler:  query.NewListReturnsHandler(orders),
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		ordersPlaced:        ordersPlaced,
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
func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

func isOrderManager(role string) bool {
	return role == userdomain.RoleSuperAdmin || role == userdomain.RoleOrderManager
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		UserID         uint   `json:"user_id"`
		DeliveryOption string `json:"delivery_option"`
		Items          []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Customers always order for themselves; managers may order on behalf
	// of another user.
	userID := actorID
	if req.UserID != 0 && isOrderManager(middleware.Role(r)) {
		userID = req.UserID
	}

	items := make([]command.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, command.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.createHandler.Handle(r.Context(), command.CreateOrderCommand{
		ActorID:        actorID,
		UserID:         userID,
		Items:          items,
		DeliveryOption: req.DeliveryOption,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.ordersPlaced.Inc()
	h.respondJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListOrdersQuery{Limit: limit, Offset: offset}
	if !isOrderManager(middleware.Role(r)) {
		q.UserID = actorID
	}

	result, err := h.listOrdersHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// TrackOrder handles GET /orders/track/{id}
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.getOrderHandler.Handle(r.Context(), query.GetOrderQuery{
		OrderID:   uint(id),
		ActorID:   actorID,
		ActorRole: middleware.Role(r),
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order tracked successfully",
		"order":   order,
	})
}

// UpdateOrder handles PUT /orders/{id}/update_info
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		Status         *string `json:"status"`
		DeliveryOption *string `json:"delivery_option"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.updateStatusHandler.Handle(r.Context(), command.UpdateStatusCommand{
		ActorID:        actorID,
		OrderID:        uint(id),
		Status:         req.Status,
		DeliveryOption: req.DeliveryOption,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order information updated successfully",
		"order":   order,
	})
}

// DeleteOrder handles DELETE /orders/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	cmd := command.DeleteOrderCommand{ActorID: actorID, OrderID: uint(id)}
	if err := h.deleteHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

// ReturnItem handles POST /orders/{id}/return_item
func (h *OrderHandler) ReturnItem(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		OrderItemID uint   `json:"order_item_id"`
		Reason      string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ret, err := h.returnItemHandler.Handle(r.Context(), command.ReturnItemCommand{
		ActorID:     actorID,
		ActorRole:   middleware.Role(r),
		OrderID:     uint(id),
		OrderItemID: req.OrderItemID,
		Reason:      req.Reason,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Return request created successfully",
		"return":  ret,
	})
}

// ListReturns handles GET /orders/returns
func (h *OrderHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	returns, err := h.listReturnsHandler.Handle(query.ListReturnsQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, returns)
}

// UpdateReturn handles PUT /orders/returns/{id}
func (h *OrderHandler) UpdateReturn(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid return ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ret, err := h.updateReturnHandler.Handle(r.Context(), command.UpdateReturnCommand{
		ActorID:  actorID,
		ReturnID: uint(id),
		Status:   req.Status,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, ret)
}

// respondJSON sends a JSON response
func (h *OrderHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *OrderHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	manager := middleware.RequireRoles(userdomain.RoleOrderManager)

	// Authenticated user routes
	router.HandleFunc("/orders", h.metricsMiddleware("/orders", middleware.Auth(h.ListOrders))).Methods("GET")
	router.HandleFunc("/orders", h.metricsMiddleware("/orders", middleware.Auth(h.CreateOrder))).Methods("POST")
	router.HandleFunc("/orders/track/{id}", h.metricsMiddleware("/orders/track/{id}", middleware.Auth(h.TrackOrder))).Methods("GET")
	router.HandleFunc("/orders/{id}/return_item", h.metricsMiddleware("/orders/{id}/return_item", middleware.Auth(h.ReturnItem))).Methods("POST")

	// Manager routes
	router.HandleFunc("/orders/returns", h.metricsMiddleware("/orders/returns", manager(h.ListReturns))).Methods("GET")
	router.HandleFunc("/orders/returns/{id}", h.metricsMiddleware("/orders/returns/{id}", manager(h.UpdateReturn))).Methods("PUT")
	router.HandleFunc("/orders/{id}/update_info", h.metricsMiddleware("/orders/{id}/update_info", manager(h.UpdateOrder))).Methods("PUT")
	router.HandleFunc("/orders/{id}", h.metricsMiddleware("/orders/{id}", manager(h.DeleteOrder))).Methods("DELETE")
}
