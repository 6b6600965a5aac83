package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// DeleteOrderCommand represents the command to hard-delete an order
type DeleteOrderCommand struct {
	ActorID uint
	OrderID uint
}

// DeleteOrderHandler handles order deletion
type DeleteOrderHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteOrderHandler creates a new delete order handler
func NewDeleteOrderHandler(uow domain.UnitOfWork) *DeleteOrderHandler {
	return &DeleteOrderHandler{uow: uow}
}

// Handle executes the delete order command. Stock is restored only when the
// order has not already restored it (a canceled order arrives here with
// StockRestored set), then the order and its items and returns are removed.
func (h *DeleteOrderHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		order, err := repos.Orders.FindByIDForUpdate(cmd.OrderID)
		if err != nil {
			return apperrors.NotFoundf("order %d not found", cmd.OrderID)
		}

		if !order.StockRestored {
			if err := restoreStock(repos, order.Items); err != nil {
				return err
			}
		}

		if err := repos.Orders.Delete(order.ID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		action := fmt.Sprintf("Order %d deleted", order.ID)
		if err := repos.Audit.Record(cmd.ActorID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}
