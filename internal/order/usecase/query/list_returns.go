package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// ListReturnsQuery represents the query to list return requests
type ListReturnsQuery struct {
	Limit  int
	Offset int
}

// ListReturnsHandler handles listing returns
type ListReturnsHandler struct {
	repo domain.OrderRepository
}

// NewListReturnsHandler creates a new list returns handler
func NewListReturnsHandler(repo domain.OrderRepository) *ListReturnsHandler {
	return &ListReturnsHandler{repo: repo}
}

// Handle executes the list returns query
func (h *ListReturnsHandler) Handle(q ListReturnsQuery) ([]domain.Return, error) {
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

	returns, err := h.repo.FindAllReturns(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}
