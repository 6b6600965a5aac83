package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"
	"github.com/cedarmart/commerce/pkg/middleware"

	"github.com/cedarmart/commerce/internal/promotion/domain"
	"github.com/cedarmart/commerce/internal/promotion/usecase/command"
	"github.com/cedarmart/commerce/internal/promotion/usecase/query"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

// PromotionHandler handles HTTP requests for promotions and coupons
type PromotionHandler struct {
	createPromotionHandler *command.CreatePromotionHandler
	updatePromotionHandler *command.UpdatePromotionHandler
	deletePromotionHandler *command.DeletePromotionHandler
	createCouponHandler    *command.CreateCouponHandler
	updateCouponHandler    *command.UpdateCouponHandler
	deleteCouponHandler    *command.DeleteCouponHandler
	applyCouponHandler     *command.ApplyCouponHandler

	listPromotionsHandler *query.ListPromotionsHandler
	getPromotionHandler   *query.GetPromotionHandler
	listCouponsHandler    *query.ListCouponsHandler
	getCouponHandler      *query.GetCouponHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	couponsApplied prometheus.Counter
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(uow domain.UnitOfWork, promotions domain.PromotionRepository, coupons domain.CouponRepository) *PromotionHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promotion_service_requests_total",
			Help: "Total number of requests to promotion endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promotion_service_request_duration_seconds",
			Help:    "Duration of promotion requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	couponsApplied := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "promotion_service_coupons_applied_total",
			Help: "Total number of successfully applied coupons",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(couponsApplied)

	return &PromotionHandler{
		createPromotionHandler: command.NewCreatePromotionHandler(uow),
		updatePromotionHandler: command.NewUpdatePromotionHandler(uow),
		deletePromotionHandler: command.NewDeletePromotionHandler(uow),
		createCouponHandler:    command.NewCreateCouponHandler(uow),
		updateCouponHandler:    command.NewUpdateCouponHandler(uow),
		deleteCouponHandler:    command.NewDeleteCouponHandler(uow),
		applyCouponHandler:     command.NewApplyCouponHandler(uow),
		listPromotionsHandler:  query.NewListPromotionsHandler(promotions),
		getPromotionHandler:    query.NewGetPromotionHandler(promotions),
		listCouponsHandler:     query.NewListCouponsHandler(coupons),
		getCouponHandler:       query.NewGetCouponHandler(coupons),
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
		couponsApplied:         couponsApplied,
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
func (h *PromotionHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type promotionRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	StartDate          *time.Time       `json:"start_date"`
	EndDate            *time.Time       `json:"end_date"`
	ApplicableTiers    *string          `json:"applicable_tiers"`
	ProductIDs         *[]uint          `json:"product_ids"`
}

// CreatePromotion handles POST /promotions
func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	var req promotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreatePromotionCommand{ActorID: actorID}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}
	if req.DiscountPercentage != nil {
		cmd.DiscountPercentage = *req.DiscountPercentage
	}
	if req.StartDate != nil {
		cmd.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		cmd.EndDate = *req.EndDate
	}
	if req.ApplicableTiers != nil {
		cmd.ApplicableTiers = *req.ApplicableTiers
	}
	if req.ProductIDs != nil {
		cmd.ProductIDs = *req.ProductIDs
	}

	promotion, err := h.createPromotionHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, promotion)
}

// UpdatePromotion handles PUT /promotions/{id}
func (h *PromotionHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	var req promotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	promotion, err := h.updatePromotionHandler.Handle(r.Context(), command.UpdatePromotionCommand{
		ActorID:            actorID,
		ID:                 uint(id),
		Name:               req.Name,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ApplicableTiers:    req.ApplicableTiers,
		ProductIDs:         req.ProductIDs,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, promotion)
}

// DeletePromotion handles DELETE /promotions/{id}
func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	cmd := command.DeletePromotionCommand{ActorID: actorID, ID: uint(id)}
	if err := h.deletePromotionHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Promotion deleted successfully"})
}

// ListPromotions handles GET /promotions
func (h *PromotionHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.listPromotionsHandler.Handle(query.ListPromotionsQuery{})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, promotions)
}

// GetPromotion handles GET /promotions/{id}
func (h *PromotionHandler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	promotion, err := h.getPromotionHandler.Handle(query.GetPromotionQuery{ID: uint(id)})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, promotion)
}

// CreateCoupon handles POST /coupons
func (h *PromotionHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	var req struct {
		Code           string    `json:"code"`
		PromotionID    uint      `json:"promotion_id"`
		UserID         *uint     `json:"user_id"`
		ExpirationDate time.Time `json:"expiration_date"`
		UsageLimit     *int      `json:"usage_limit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	coupon, err := h.createCouponHandler.Handle(r.Context(), command.CreateCouponCommand{
		ActorID:        actorID,
		Code:           req.Code,
		PromotionID:    req.PromotionID,
		UserID:         req.UserID,
		ExpirationDate: req.ExpirationDate,
		UsageLimit:     req.UsageLimit,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, coupon)
}

// UpdateCoupon handles PUT /coupons/{id}
func (h *PromotionHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid coupon ID")
		return
	}

	var req struct {
		Code           *string    `json:"code"`
		PromotionID    *uint      `json:"promotion_id"`
		UserID         *uint      `json:"user_id"`
		ExpirationDate *time.Time `json:"expiration_date"`
		UsageLimit     *int       `json:"usage_limit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	coupon, err := h.updateCouponHandler.Handle(r.Context(), command.UpdateCouponCommand{
		ActorID:        actorID,
		ID:             uint(id),
		Code:           req.Code,
		PromotionID:    req.PromotionID,
		UserID:         req.UserID,
		ExpirationDate: req.ExpirationDate,
		UsageLimit:     req.UsageLimit,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, coupon)
}

// DeleteCoupon handles DELETE /coupons/{id}
func (h *PromotionHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid coupon ID")
		return
	}

	cmd := command.DeleteCouponCommand{ActorID: actorID, ID: uint(id)}
	if err := h.deleteCouponHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Coupon deleted successfully"})
}

// ListCoupons handles GET /coupons
func (h *PromotionHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	coupons, err := h.listCouponsHandler.Handle(query.ListCouponsQuery{UserID: userID})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, coupons)
}

// GetCoupon handles GET /coupons/{id}
func (h *PromotionHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid coupon ID")
		return
	}

	coupon, err := h.getCouponHandler.Handle(query.GetCouponQuery{ID: uint(id), UserID: userID})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, coupon)
}

// ApplyCoupon handles POST /coupons/apply
func (h *PromotionHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		CouponCode string `json:"coupon_code"`
		OrderID    uint   `json:"order_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.applyCouponHandler.Handle(r.Context(), command.ApplyCouponCommand{
		UserID:  userID,
		Code:    req.CouponCode,
		OrderID: req.OrderID,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.couponsApplied.Inc()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "Coupon applied successfully",
		"discount_amount": result.DiscountAmount,
		"new_total_price": result.NewTotalPrice,
	})
}

// respondJSON sends a JSON response
func (h *PromotionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *PromotionHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all promotion and coupon routes
func (h *PromotionHandler) RegisterRoutes(router *mux.Router) {
	manager := middleware.RequireRoles(userdomain.RoleProductManager)

	// Authenticated user routes
	router.HandleFunc("/promotions", h.metricsMiddleware("/promotions", middleware.Auth(h.ListPromotions))).Methods("GET")
	router.HandleFunc("/promotions/{id}", h.metricsMiddleware("/promotions/{id}", middleware.Auth(h.GetPromotion))).Methods("GET")
	router.HandleFunc("/coupons", h.metricsMiddleware("/coupons", middleware.Auth(h.ListCoupons))).Methods("GET")
	router.HandleFunc("/coupons/apply", h.metricsMiddleware("/coupons/apply", middleware.Auth(h.ApplyCoupon))).Methods("POST")
	router.HandleFunc("/coupons/{id}", h.metricsMiddleware("/coupons/{id}", middleware.Auth(h.GetCoupon))).Methods("GET")

	// Manager routes
	router.HandleFunc("/promotions", h.metricsMiddleware("/promotions", manager(h.CreatePromotion))).Methods("POST")
	router.HandleFunc("/promotions/{id}", h.metricsMiddleware("/promotions/{id}", manager(h.UpdatePromotion))).Methods("PUT")
	router.HandleFunc("/promotions/{id}", h.metricsMiddleware("/promotions/{id}", manager(h.DeletePromotion))).Methods("DELETE")
	router.HandleFunc("/coupons", h.metricsMiddleware("/coupons", manager(h.CreateCoupon))).Methods("POST")
	router.HandleFunc("/coupons/{id}", h.metricsMiddleware("/coupons/{id}", manager(h.UpdateCoupon))).Methods("PUT")
	router.HandleFunc("/coupons/{id}", h.metricsMiddleware("/coupons/{id}", manager(h.DeleteCoupon))).Methods("DELETE")
}
