package query

import (
	"context"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/order/domain"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

// GetOrderQuery represents the query to fetch one order
type GetOrderQuery struct {
	OrderID   uint
	ActorID   uint
	ActorRole string
}

// GetOrderHandler handles the get order query
type GetOrderHandler struct {
	repo domain.OrderReader
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderReader) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query. Customers can see only their own
// orders; the refusal does not reveal whether the order exists.
func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*domain.Order, error) {
	order, err := h.repo.FindByIDWithContext(ctx, q.OrderID)
	if err != nil {
		return nil, apperrors.NotFoundf("order %d not found", q.OrderID)
	}

	if order.UserID != q.ActorID &&
		q.ActorRole != userdomain.RoleSuperAdmin && q.ActorRole != userdomain.RoleOrderManager {
		return nil, apperrors.Forbiddenf("not allowed to view this order")
	}

	return order, nil
}
