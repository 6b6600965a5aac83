package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

// UpdateStockCommand represents the command to set the stock level of a
// product at a specific location.
type UpdateStockCommand struct {
	ActorID    uint
	ProductID  uint
	Location   string
	StockLevel int
}

// UpdateStockHandler handles location stock updates
type UpdateStockHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(uow domain.UnitOfWork) *UpdateStockHandler {
	return &UpdateStockHandler{uow: uow}
}

// Handle executes the update stock command and recomputes the product's
// aggregate stock from the per-location records.
func (h *UpdateStockHandler) Handle(ctx context.Context, cmd UpdateStockCommand) (*domain.Inventory, error) {
	location := strings.TrimSpace(cmd.Location)
	if cmd.ProductID == 0 || location == "" {
		return nil, apperrors.Validationf("product_id and location are required")
	}
	if cmd.StockLevel < 0 {
		return nil, apperrors.Validationf("stock_level must not be negative")
	}

	var record *domain.Inventory

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		product, err := repos.Products.FindByIDForUpdate(cmd.ProductID)
		if err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ProductID)
		}

		record, err = repos.Inventories.FindByProductAndLocation(cmd.ProductID, location)
		if err != nil {
			return fmt.Errorf("failed to look up inventory record: %w", err)
		}
		if record == nil {
			return apperrors.NotFoundf("inventory record not found for product %d at %s", cmd.ProductID, location)
		}

		record.StockLevel = cmd.StockLevel
		if err := repos.Inventories.Update(record); err != nil {
			return fmt.Errorf("failed to update inventory record: %w", err)
		}

		total, err := repos.Inventories.SumByProduct(cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to sum inventory: %w", err)
		}
		if err := repos.Products.UpdateStock(product.ID, total); err != nil {
			return fmt.Errorf("failed to update product stock: %w", err)
		}

		action := fmt.Sprintf("Stock for product %d at %s set to %d", cmd.ProductID, location, cmd.StockLevel)
		if err := repos.Audit.Record(cmd.ActorID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
