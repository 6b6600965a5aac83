package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/cart/domain"
)

// RemoveItemCommand represents the command to remove a product from the cart
type RemoveItemCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveItemHandler handles removing a product from a cart
type RemoveItemHandler struct {
	uow domain.UnitOfWork
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(uow domain.UnitOfWork) *RemoveItemHandler {
	return &RemoveItemHandler{uow: uow}
}

// Handle executes the remove item command. The reserved quantity is
// returned to product stock in the same transaction.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	if cmd.ProductID == 0 {
		return apperrors.Validationf("product_id is required")
	}

	return h.uow.Execute(ctx, func(repos domain.Repos) error {
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

		// The product may have been deleted since the item was added;
		// only restore stock when it still exists.
		product, err := repos.Products.FindByIDForUpdate(cmd.ProductID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return fmt.Errorf("failed to lock product %d: %w", cmd.ProductID, err)
		default:
			if err := repos.Products.UpdateStock(product.ID, product.Stock+item.Quantity); err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		if err := repos.Carts.DeleteItem(item.ID); err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}

		if err := repos.Audit.Record(cmd.UserID, fmt.Sprintf("Removed product %d from cart", cmd.ProductID)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}
