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

	"github.com/cedarmart/commerce/internal/catalog/domain"
	"github.com/cedarmart/commerce/internal/catalog/usecase/command"
	"github.com/cedarmart/commerce/internal/catalog/usecase/query"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

// CatalogHandler handles HTTP requests for products, categories and
// subcategories.
type CatalogHandler struct {
	// Command handlers
	createHandler            *command.CreateProductHandler
	updateHandler            *command.UpdateProductHandler
	deleteHandler            *command.DeleteProductHandler
	bulkCreateHandler        *command.BulkCreateProductsHandler
	createCategoryHandler    *command.CreateCategoryHandler
	updateCategoryHandler    *command.UpdateCategoryHandler
	deleteCategoryHandler    *command.DeleteCategoryHandler
	createSubcategoryHandler *command.CreateSubcategoryHandler
	updateSubcategoryHandler *command.UpdateSubcategoryHandler
	deleteSubcategoryHandler *command.DeleteSubcategoryHandler

	// Query handlers
	getProductHandler        *query.GetProductHandler
	listProductsHandler      *query.ListProductsHandler
	listCategoriesHandler    *query.ListCategoriesHandler
	listSubcategoriesHandler *query.ListSubcategoriesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	uow domain.UnitOfWork,
	products domain.ProductReader,
	categories domain.CategoryRepository,
	subcategories domain.SubcategoryRepository,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		createHandler:            command.NewCreateProductHandler(uow),
		updateHandler:            command.NewUpdateProductHandler(uow),
		deleteHandler:            command.NewDeleteProductHandler(uow),
		bulkCreateHandler:        command.NewBulkCreateProductsHandler(uow),
		createCategoryHandler:    command.NewCreateCategoryHandler(uow),
		updateCategoryHandler:    command.NewUpdateCategoryHandler(uow),
		deleteCategoryHandler:    command.NewDeleteCategoryHandler(uow),
		createSubcategoryHandler: command.NewCreateSubcategoryHandler(uow),
		updateSubcategoryHandler: command.NewUpdateSubcategoryHandler(uow),
		deleteSubcategoryHandler: command.NewDeleteSubcategoryHandler(uow),
		getProductHandler:        query.NewGetProductHandler(products),
		listProductsHandler:      query.NewListProductsHandler(products),
		listCategoriesHandler:    query.NewListCategoriesHandler(categories),
		listSubcategoriesHandler: query.NewListSubcategoriesHandler(subcategories),
		requestCounter:           requestCounter,
		requestLatency:           requestLatency,
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
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type productRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	Stock          *int             `json:"stock"`
	StockThreshold *int             `json:"stock_threshold"`
	Image          *string          `json:"image"`
	CategoryID     *uint            `json:"category_id"`
	SubcategoryID  *uint            `json:"subcategory_id"`
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateProductCommand{ActorID: actorID}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}
	if req.Price != nil {
		cmd.Price = *req.Price
	}
	if req.Stock != nil {
		cmd.Stock = *req.Stock
	}
	if req.StockThreshold != nil {
		cmd.StockThreshold = *req.StockThreshold
	}
	if req.Image != nil {
		cmd.Image = *req.Image
	}
	if req.CategoryID != nil {
		cmd.CategoryID = *req.CategoryID
	}
	cmd.SubcategoryID = req.SubcategoryID

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateProductCommand{
		ActorID:        actorID,
		ID:             uint(id),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		StockThreshold: req.StockThreshold,
		Image:          req.Image,
		SubcategoryID:  req.SubcategoryID,
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cmd := command.DeleteProductCommand{ActorID: actorID, ID: uint(id)}
	if err := h.deleteHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// BulkCreateProducts handles POST /products/bulk
func (h *CatalogHandler) BulkCreateProducts(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	var req struct {
		Products []struct {
			Name           string          `json:"name"`
			Description    string          `json:"description"`
			Price          decimal.Decimal `json:"price"`
			Stock          int             `json:"stock"`
			StockThreshold int             `json:"stock_threshold"`
			Image          string          `json:"image"`
			CategoryID     uint            `json:"category_id"`
			SubcategoryID  *uint           `json:"subcategory_id"`
		} `json:"products"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rows := make([]command.ProductRow, 0, len(req.Products))
	for _, p := range req.Products {
		rows = append(rows, command.ProductRow{
			Name:           p.Name,
			Description:    p.Description,
			Price:          p.Price,
			Stock:          p.Stock,
			StockThreshold: p.StockThreshold,
			Image:          p.Image,
			CategoryID:     p.CategoryID,
			SubcategoryID:  p.SubcategoryID,
		})
	}

	created, err := h.bulkCreateHandler.Handle(r.Context(), command.BulkCreateProductsCommand{
		ActorID: actorID,
		Rows:    rows,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]int{"created": created})
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	view, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: uint(id)})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	categoryID, _ := strconv.ParseUint(r.URL.Query().Get("category_id"), 10, 32)

	views, err := h.listProductsHandler.Handle(r.Context(), query.ListProductsQuery{
		Limit:      limit,
		Offset:     offset,
		CategoryID: uint(categoryID),
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

// CreateCategory handles POST /categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.createCategoryHandler.Handle(r.Context(), command.CreateCategoryCommand{
		ActorID:     actorID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /categories/{id}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.updateCategoryHandler.Handle(r.Context(), command.UpdateCategoryCommand{
		ActorID:     actorID,
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	cmd := command.DeleteCategoryCommand{ActorID: actorID, ID: uint(id)}
	if err := h.deleteCategoryHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(query.ListCategoriesQuery{})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, categories)
}

// CreateSubcategory handles POST /subcategories
func (h *CatalogHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	var req struct {
		Name       string `json:"name"`
		CategoryID uint   `json:"category_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subcategory, err := h.createSubcategoryHandler.Handle(r.Context(), command.CreateSubcategoryCommand{
		ActorID:    actorID,
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, subcategory)
}

// UpdateSubcategory handles PUT /subcategories/{id}
func (h *CatalogHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid subcategory ID")
		return
	}

	var req struct {
		Name *string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subcategory, err := h.updateSubcategoryHandler.Handle(r.Context(), command.UpdateSubcategoryCommand{
		ActorID: actorID,
		ID:      uint(id),
		Name:    req.Name,
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, subcategory)
}

// DeleteSubcategory handles DELETE /subcategories/{id}
func (h *CatalogHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid subcategory ID")
		return
	}

	cmd := command.DeleteSubcategoryCommand{ActorID: actorID, ID: uint(id)}
	if err := h.deleteSubcategoryHandler.Handle(r.Context(), cmd); err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Subcategory deleted successfully"})
}

// ListSubcategories handles GET /subcategories
func (h *CatalogHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseUint(r.URL.Query().Get("category_id"), 10, 32)

	subcategories, err := h.listSubcategoriesHandler.Handle(query.ListSubcategoriesQuery{
		CategoryID: uint(categoryID),
	})
	if err != nil {
		h.respondError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, subcategories)
}

// respondJSON sends a JSON response
func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	manager := middleware.RequireRoles(userdomain.RoleProductManager)

	// Public routes
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/categories", h.metricsMiddleware("/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/subcategories", h.metricsMiddleware("/subcategories", h.ListSubcategories)).Methods("GET")

	// Admin routes
	router.HandleFunc("/products", h.metricsMiddleware("/products", manager(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/products/bulk", h.metricsMiddleware("/products/bulk", manager(h.BulkCreateProducts))).Methods("POST")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", manager(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", manager(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/categories", h.metricsMiddleware("/categories", manager(h.CreateCategory))).Methods("POST")
	router.HandleFunc("/categories/{id}", h.metricsMiddleware("/categories/{id}", manager(h.UpdateCategory))).Methods("PUT")
	router.HandleFunc("/categories/{id}", h.metricsMiddleware("/categories/{id}", manager(h.DeleteCategory))).Methods("DELETE")
	router.HandleFunc("/subcategories", h.metricsMiddleware("/subcategories", manager(h.CreateSubcategory))).Methods("POST")
	router.HandleFunc("/subcategories/{id}", h.metricsMiddleware("/subcategories/{id}", manager(h.UpdateSubcategory))).Methods("PUT")
	router.HandleFunc("/subcategories/{id}", h.metricsMiddleware("/subcategories/{id}", manager(h.DeleteSubcategory))).Methods("DELETE")
}
