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

	"github.com/cedarmart/commerce/internal/inventory/domain"
	"github.com/cedarmart/commerce/internal/inventory/usecase/command"
	"github.com/cedarmart/commerce/internal/inventory/usecase/query"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	addHandler    *command.AddRecordHandler
	updateHandler *command.UpdateStockHandler

	listHandler     *query.ListInventoryHandler
	lowStockHandler *query.LowStockAlertsHandler
	reportHandler   *query.SalesReportHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	lowStockGauge  prometheus.Gauge
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(uow domain.UnitOfWork, inventories domain.InventoryRepository) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	lowStockGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_service_low_stock_locations",
			Help: "Number of locations at or below their product's stock threshold",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(lowStockGauge)

	return &InventoryHandler{
		addHandler:      command.NewAddRecordHandler(uow),
		updateHandler:   command.NewUpdateStockHandler(uow),
		listHandler:     query.NewListInventoryHandler(inventories),
		lowStockHandler: query.NewLowStockAlertsHandler(inventories),
		reportHandler:   query.NewSalesReportHandler(inventories),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		lowStockGauge:   lowStockGauge,
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
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListInventory handles GET /inventory/all
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	records, err := h.listHandler.Handle(query.ListInventoryQuery{})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, records)
}

// AddRecord handles POST /inventory/add
func (h *InventoryHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID  uint   `json:"product_id"`
		Location   string `json:"location"`
		StockLevel int    `json:"stock_level"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.addHandler.Handle(r.Context(), command.AddRecordCommand{
		ActorID:    actorID,
		ProductID:  req.ProductID,
		Location:   req.Location,
		StockLevel: req.StockLevel,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Inventory added successfully",
		"inventory": record,
	})
}

// UpdateStock handles POST /inventory/update_stock
func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID  uint   `json:"product_id"`
		Location   string `json:"location"`
		StockLevel int    `json:"stock_level"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.updateHandler.Handle(r.Context(), command.UpdateStockCommand{
		ActorID:    actorID,
		ProductID:  req.ProductID,
		Location:   req.Location,
		StockLevel: req.StockLevel,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Stock updated successfully",
		"inventory": record,
	})
}

// LowStockAlerts handles GET /inventory/low_stock_alerts
func (h *InventoryHandler) LowStockAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.lowStockHandler.Handle(query.LowStockAlertsQuery{})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.lowStockGauge.Set(float64(len(alerts)))

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"low_stock_alerts": alerts})
}

// SalesReport handles GET /inventory/inventory_report
func (h *InventoryHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportHandler.Handle(query.SalesReportQuery{})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"sales_report": rows})
}

// respondJSON sends a JSON response
func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	manager := middleware.RequireRoles(userdomain.RoleInventoryManager)

	router.HandleFunc("/inventory/all", h.metricsMiddleware("/inventory/all", manager(h.ListInventory))).Methods("GET")
	router.HandleFunc("/inventory/add", h.metricsMiddleware("/inventory/add", manager(h.AddRecord))).Methods("POST")
	router.HandleFunc("/inventory/update_stock", h.metricsMiddleware("/inventory/update_stock", manager(h.UpdateStock))).Methods("POST")
	router.HandleFunc("/inventory/low_stock_alerts", h.metricsMiddleware("/inventory/low_stock_alerts", manager(h.LowStockAlerts))).Methods("GET")
	router.HandleFunc("/inventory/inventory_report", h.metricsMiddleware("/inventory/inventory_report", manager(h.SalesReport))).Methods("GET")
}
