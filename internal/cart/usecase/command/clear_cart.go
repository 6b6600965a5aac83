package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/cart/domain"
)

// ClearCartCommand represents the command to empty the user's cart
type ClearCartCommand struct {
	UserID uint
}

// ClearCartHandler handles emptying a cart
type ClearCartHandler struct {
	uow domain.UnitOfWork
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(uow domain.UnitOfWork) *ClearCartHandler {
	return &ClearCartHandler{uow: uow}
}

// Handle executes the clear cart command, returning every reserved
// quantity to stock before deleting the lines.
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		cart, err := repos.Carts.FindByUserID(cmd.UserID)
		if err != nil {
			return apperrors.NotFoundf("cart not found")
		}

		for _, item := range cart.Items {
			product, err := repos.Products.FindByIDForUpdate(item.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to lock product %d: %w", item.ProductID, err)
			}
			if err := repos.Products.UpdateStock(product.ID, product.Stock+item.Quantity); err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		if err := repos.Carts.DeleteItems(cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		if err := repos.Audit.Record(cmd.UserID, "Cleared the cart"); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}
