package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/order/domain"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

// ReturnItemCommand represents the command to return one item of a
// delivered order.
type ReturnItemCommand struct {
	ActorID     uint
	ActorRole   string
	OrderID     uint
	OrderItemID uint
	Reason      string
}

// ReturnItemHandler handles item returns
type ReturnItemHandler struct {
	uow domain.UnitOfWork
}

// NewReturnItemHandler creates a new return item handler
func NewReturnItemHandler(uow domain.UnitOfWork) *ReturnItemHandler {
	return &ReturnItemHandler{uow: uow}
}

func canManageOrder(role string) bool {
	return role == userdomain.RoleSuperAdmin || role == userdomain.RoleOrderManager
}

// Handle executes the return item command. Only delivered orders accept
// returns. The item's quantity goes back to stock, its price comes off the
// order total, the item is removed and a pending Return row is created, all
// in one transaction.
func (h *ReturnItemHandler) Handle(ctx context.Context, cmd ReturnItemCommand) (*domain.Return, error) {
	if cmd.OrderItemID == 0 || cmd.Reason == "" {
		return nil, apperrors.Validationf("order_item_id and reason are required")
	}

	var ret *domain.Return
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		order, err := repos.Orders.FindByIDForUpdate(cmd.OrderID)
		if err != nil {
			return apperrors.NotFoundf("order %d not found", cmd.OrderID)
		}

		if order.UserID != cmd.ActorID && !canManageOrder(cmd.ActorRole) {
			return apperrors.Forbiddenf("not allowed to modify this order")
		}

		if order.Status != domain.StatusDelivered {
			return apperrors.Validationf("only delivered orders accept returns")
		}

		item, err := repos.Orders.FindItem(order.ID, cmd.OrderItemID)
		if err != nil {
			return fmt.Errorf("failed to load order item: %w", err)
		}
		if item == nil {
			return apperrors.NotFoundf("order item %d not found in order %d", cmd.OrderItemID, cmd.OrderID)
		}

		product, err := repos.Products.FindByIDForUpdate(item.ProductID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Product deleted since the order was placed; nothing to restore.
		case err != nil:
			return fmt.Errorf("failed to lock product %d: %w", item.ProductID, err)
		default:
			if err := repos.Products.UpdateStock(product.ID, product.Stock+item.Quantity); err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		order.TotalPrice = order.TotalPrice.Sub(item.Price)
		if err := repos.Orders.Update(order); err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}

		if err := repos.Orders.DeleteItem(item.ID); err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}

		ret = &domain.Return{
			OrderItemID: cmd.OrderItemID,
			Reason:      cmd.Reason,
			Status:      domain.ReturnPending,
		}
		if err := repos.Orders.CreateReturn(ret); err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}

		action := fmt.Sprintf("Return requested for item %d of order %d", cmd.OrderItemID, cmd.OrderID)
		if err := repos.Audit.Record(cmd.ActorID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}
