package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"
	"github.com/cedarmart/commerce/pkg/logger"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// UpdateStatusCommand represents the command to change an order's status
// and optionally its delivery option.
type UpdateStatusCommand struct {
	ActorID        uint
	OrderID        uint
	Status         *string
	DeliveryOption *string
}

// UpdateStatusHandler handles order status transitions
type UpdateStatusHandler struct {
	uow       domain.UnitOfWork
	publisher domain.EventPublisher
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(uow domain.UnitOfWork, publisher domain.EventPublisher) *UpdateStatusHandler {
	return &UpdateStatusHandler{uow: uow, publisher: publisher}
}

// Handle executes the update status command. Transitioning into Canceled
// restores every item's stock exactly once; the StockRestored flag keeps a
// repeated cancel or a later delete from restoring again.
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	if cmd.Status != nil && !domain.ValidStatus(*cmd.Status) {
		return nil, apperrors.Validationf("invalid status value")
	}
	if cmd.DeliveryOption != nil && !domain.ValidDeliveryOption(*cmd.DeliveryOption) {
		return nil, apperrors.Validationf("invalid delivery option value")
	}

	var order *domain.Order
	var canceled bool
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		var err error
		order, err = repos.Orders.FindByIDForUpdate(cmd.OrderID)
		if err != nil {
			return apperrors.NotFoundf("order %d not found", cmd.OrderID)
		}

		// Delivered and Canceled are terminal; nothing on the order may
		// change afterwards, the delivery option included.
		if order.Status == domain.StatusDelivered {
			return apperrors.Validationf("order is already delivered")
		}
		if order.Status == domain.StatusCanceled {
			return apperrors.Validationf("order is canceled")
		}

		if cmd.Status != nil && *cmd.Status != order.Status {
			if *cmd.Status == domain.StatusCanceled && !order.StockRestored {
				if err := restoreStock(repos, order.Items); err != nil {
					return err
				}
				order.StockRestored = true
				canceled = true
			}
			order.Status = *cmd.Status
		}

		if cmd.DeliveryOption != nil {
			order.DeliveryOption = *cmd.DeliveryOption
		}

		if err := repos.Orders.Update(order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		action := fmt.Sprintf("Order %d updated, status %s", order.ID, order.Status)
		if err := repos.Audit.Record(cmd.ActorID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if canceled && h.publisher != nil {
		if err := h.publisher.OrderCanceled(ctx, order); err != nil {
			logger.Warn(ctx).Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order canceled event")
		}
	}

	return order, nil
}
