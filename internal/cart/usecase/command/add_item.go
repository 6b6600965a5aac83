package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/cart/domain"
)

// AddItemCommand represents the command to add a product to the user's cart
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// AddItemHandler handles adding a product to a cart
type AddItemHandler struct {
	uow domain.UnitOfWork
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(uow domain.UnitOfWork) *AddItemHandler {
	return &AddItemHandler{uow: uow}
}

// Handle executes the add item command. The product row is locked for the
// duration of the transaction so concurrent adds cannot both claim the last
// unit of stock.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.CartItem, error) {
	if cmd.ProductID == 0 {
		return nil, apperrors.Validationf("product_id is required")
	}
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, apperrors.Validationf("quantity must be a positive integer")
	}

	var result *domain.CartItem
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		product, err := repos.Products.FindByIDForUpdate(cmd.ProductID)
		if err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ProductID)
		}

		if product.Stock < quantity {
			return apperrors.InsufficientStockf("insufficient stock for product %d", cmd.ProductID)
		}

		cart, err := repos.Carts.FindOrCreateByUserID(cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		item, err := repos.Carts.FindItem(cart.ID, cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load cart item: %w", err)
		}

		if item != nil {
			item.Quantity += quantity
			if err := repos.Carts.UpdateItem(item); err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		} else {
			item = &domain.CartItem{CartID: cart.ID, ProductID: cmd.ProductID, Quantity: quantity}
			if err := repos.Carts.CreateItem(item); err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		}

		if err := repos.Products.UpdateStock(product.ID, product.Stock-quantity); err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}

		if err := repos.Audit.Record(cmd.UserID, fmt.Sprintf("Added product %d to cart", cmd.ProductID)); err != nil {
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
