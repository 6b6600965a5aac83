package query

import (
	"context"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// ProductView is a product together with its stock classification.
type ProductView struct {
	domain.Product
	StockLevel string `json:"stock_level"`
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductReader
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductReader) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*ProductView, error) {
	product, err := h.repo.FindByIDWithContext(ctx, q.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("product %d not found", q.ID)
	}
	return &ProductView{Product: *product, StockLevel: product.CheckStockLevel()}, nil
}
