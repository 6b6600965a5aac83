package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"
	"github.com/cedarmart/commerce/pkg/logger"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// OrderLine is one requested (product, quantity) pair.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// CreateOrderCommand represents the command to place a new order
type CreateOrderCommand struct {
	ActorID        uint
	UserID         uint
	Items          []OrderLine
	DeliveryOption string
}

// CreateOrderHandler handles order placement
type CreateOrderHandler struct {
	uow       domain.UnitOfWork
	publisher domain.EventPublisher
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(uow domain.UnitOfWork, publisher domain.EventPublisher) *CreateOrderHandler {
	return &CreateOrderHandler{uow: uow, publisher: publisher}
}

// Handle executes the create order command. Every product row is locked
// and checked before any stock moves; any failure rolls back the whole
// order so no partial decrement survives. Item prices are snapshotted at
// creation time.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.Validationf("user_id is required")
	}
	if len(cmd.Items) == 0 {
		return nil, apperrors.Validationf("order must contain at least one item")
	}
	deliveryOption := cmd.DeliveryOption
	if deliveryOption == "" {
		deliveryOption = domain.DeliveryStandard
	}
	if !domain.ValidDeliveryOption(deliveryOption) {
		return nil, apperrors.Validationf("invalid delivery option")
	}
	for _, line := range cmd.Items {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, apperrors.Validationf("each item needs a product_id and a positive quantity")
		}
	}

	var order *domain.Order
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(cmd.Items))

		for _, line := range cmd.Items {
			product, err := repos.Products.FindByIDForUpdate(line.ProductID)
			if err != nil {
				return apperrors.InsufficientStockf("product %d unavailable", line.ProductID)
			}
			if product.Stock < line.Quantity {
				return apperrors.InsufficientStockf("insufficient stock for product %d", line.ProductID)
			}

			price := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(price)

			if err := repos.Products.UpdateStock(product.ID, product.Stock-line.Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}

			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
		}

		order = &domain.Order{
			OrderNumber:    uuid.NewString(),
			UserID:         cmd.UserID,
			TotalPrice:     total,
			OrderDate:      time.Now().UTC(),
			Status:         domain.StatusPending,
			DeliveryOption: deliveryOption,
			Items:          items,
		}

		if err := repos.Orders.Create(order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		action := fmt.Sprintf("Order %s created for user %d, total %s", order.OrderNumber, cmd.UserID, total.StringFixed(2))
		if err := repos.Audit.Record(cmd.ActorID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.publisher != nil {
		if err := h.publisher.OrderPlaced(ctx, order); err != nil {
			logger.Warn(ctx).Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order placed event")
		}
	}

	return order, nil
}
