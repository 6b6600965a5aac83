package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/cart/domain"
)

// UpdateItemCommand represents the command to change a cart line's quantity
type UpdateItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// UpdateItemHandler handles cart quantity changes
type UpdateItemHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(uow domain.UnitOfWork) *UpdateItemHandler {
	return &UpdateItemHandler{uow: uow}
}

// Handle executes the update item command. Only the difference between the
// new and current quantity moves between cart and stock, so increases are
// checked against available stock and decreases return the surplus.
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.CartItem, error) {
	if cmd.ProductID == 0 {
		return nil, apperrors.Validationf("product_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, apperrors.Validationf("quantity must be greater than zero")
	}

	var result *domain.CartItem
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		cart, err := repos.Carts.FindByUserID(cmd.UserID)
		if err != nil {
			return apperrors.NotFoundf("cart not found")
		}

		item, err := repos.Carts.FindItem(cart.ID, cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load cart item: %w", err)
		}
		if item == nil {
			return apperrors.NotFoundf("product %d not found in cart", cmd.ProductID)
		}

		product, err := repos.Products.FindByIDForUpdate(cmd.ProductID)
		if err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ProductID)
		}

		diff := cmd.Quantity - item.Quantity
		if diff > 0 && product.Stock < diff {
			return apperrors.InsufficientStockf("insufficient stock for product %d", cmd.ProductID)
		}

		if err := repos.Products.UpdateStock(product.ID, product.Stock-diff); err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}

		item.Quantity = cmd.Quantity
		if err := repos.Carts.UpdateItem(item); err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}

		if err := repos.Audit.Record(cmd.UserID, fmt.Sprintf("Updated product %d quantity to %d in cart", cmd.ProductID, cmd.Quantity)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
