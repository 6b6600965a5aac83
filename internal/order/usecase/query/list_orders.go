package query

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders. A zero UserID lists
// all orders.
type ListOrdersQuery struct {
	UserID uint
	Limit  int
	Offset int
}

// ListOrdersResult holds a page of orders and the total count
type ListOrdersResult struct {
	Orders []domain.Order `json:"orders"`
	Total  int64          `json:"total"`
}

// ListOrdersHandler handles listing orders
type ListOrdersHandler struct {
	repo domain.OrderReader
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderReader) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) (*ListOrdersResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var orders []domain.Order
	var err error
	if q.UserID != 0 {
		orders, err = h.repo.FindByUserWithContext(ctx, q.UserID, limit, offset)
	} else {
		orders, err = h.repo.FindAllWithContext(ctx, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	total, err := h.repo.CountWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return &ListOrdersResult{Orders: orders, Total: total}, nil
}
