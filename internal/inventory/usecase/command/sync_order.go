package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/logger"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

// OrderedItem is a single line of a placed order to reconcile against the
// per-location records.
type OrderedItem struct {
	ProductID uint
	Quantity  int
}

// SyncOrderCommand reconciles per-location inventory after an order was
// placed. The order already decremented the product's aggregate stock; this
// command walks the location records and subtracts the ordered quantity from
// them, draining the best stocked locations first.
type SyncOrderCommand struct {
	OrderID uint
	Items   []OrderedItem
}

// SyncOrderHandler handles inventory reconciliation for placed orders
type SyncOrderHandler struct {
	uow domain.UnitOfWork
}

// NewSyncOrderHandler creates a new sync order handler
func NewSyncOrderHandler(uow domain.UnitOfWork) *SyncOrderHandler {
	return &SyncOrderHandler{uow: uow}
}

// Handle executes the sync order command.
func (h *SyncOrderHandler) Handle(ctx context.Context, cmd SyncOrderCommand) error {
	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		for _, item := range cmd.Items {
			remaining := item.Quantity

			records, err := repos.Inventories.FindByProduct(item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to load inventory for product %d: %w", item.ProductID, err)
			}

			for i := range records {
				if remaining <= 0 {
					break
				}
				record := &records[i]
				take := remaining
				if take > record.StockLevel {
					take = record.StockLevel
				}
				if take == 0 {
					continue
				}
				record.StockLevel -= take
				remaining -= take
				if err := repos.Inventories.Update(record); err != nil {
					return fmt.Errorf("failed to update inventory record %d: %w", record.ID, err)
				}
			}

			if remaining > 0 {
				// Location records do not cover the full quantity. The order
				// was already accepted against the aggregate stock, so log
				// the discrepancy instead of failing the consumer.
				logger.Warn(ctx).
					Uint("order_id", cmd.OrderID).
					Uint("product_id", item.ProductID).
					Int("uncovered_quantity", remaining).
					Msg("order quantity exceeds tracked location inventory")
			}
		}
		return nil
	})
}
