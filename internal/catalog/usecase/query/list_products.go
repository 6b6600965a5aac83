package query

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit      int
	Offset     int
	CategoryID uint
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductReader
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductReader) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]ProductView, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var (
		products []domain.Product
		err      error
	)
	if q.CategoryID != 0 {
		products, err = h.repo.FindByCategoryWithContext(ctx, q.CategoryID, q.Limit, q.Offset)
	} else {
		products, err = h.repo.FindAllWithContext(ctx, q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, StockLevel: p.CheckStockLevel()})
	}
	return views, nil
}
