package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

// AddRecordCommand represents the command to register a product at a new
// location.
type AddRecordCommand struct {
	ActorID    uint
	ProductID  uint
	Location   string
	StockLevel int
}

// AddRecordHandler handles inventory record creation
type AddRecordHandler struct {
	uow domain.UnitOfWork
}

// NewAddRecordHandler creates a new add record handler
func NewAddRecordHandler(uow domain.UnitOfWork) *AddRecordHandler {
	return &AddRecordHandler{uow: uow}
}

// Handle executes the add record command. After the record is written, the
// product's aggregate stock is recomputed as the sum across all locations.
func (h *AddRecordHandler) Handle(ctx context.Context, cmd AddRecordCommand) (*domain.Inventory, error) {
	location := strings.TrimSpace(cmd.Location)
	if cmd.ProductID == 0 || location == "" {
		return nil, apperrors.Validationf("product_id and location are required")
	}
	if cmd.StockLevel < 0 {
		return nil, apperrors.Validationf("stock_level must not be negative")
	}

	record := &domain.Inventory{
		ProductID:  cmd.ProductID,
		Location:   location,
		StockLevel: cmd.StockLevel,
	}

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		product, err := repos.Products.FindByIDForUpdate(cmd.ProductID)
		if err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ProductID)
		}

		existing, err := repos.Inventories.FindByProductAndLocation(cmd.ProductID, location)
		if err != nil {
			return fmt.Errorf("failed to look up inventory record: %w", err)
		}
		if existing != nil {
			return apperrors.Conflictf("inventory record for this product and location already exists")
		}

		if err := repos.Inventories.Create(record); err != nil {
			return fmt.Errorf("failed to create inventory record: %w", err)
		}

		total, err := repos.Inventories.SumByProduct(cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to sum inventory: %w", err)
		}
		if err := repos.Products.UpdateStock(product.ID, total); err != nil {
			return fmt.Errorf("failed to update product stock: %w", err)
		}

		action := fmt.Sprintf("Inventory record added for product %d at %s", cmd.ProductID, location)
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
