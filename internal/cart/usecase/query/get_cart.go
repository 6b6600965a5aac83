package query

import (
	"github.com/cedarmart/commerce/internal/cart/domain"
)

// GetCartQuery represents the query to view the user's cart
type GetCartQuery struct {
	UserID uint
}

// GetCartHandler handles the get cart query
type GetCartHandler struct {
	repo domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(repo domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

// Handle executes the get cart query. Users without a cart get an empty
// one rather than an error.
func (h *GetCartHandler) Handle(q GetCartQuery) (*domain.Cart, error) {
	cart, err := h.repo.FindByUserID(q.UserID)
	if err != nil {
		return &domain.Cart{UserID: q.UserID, Items: []domain.CartItem{}}, nil
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}
