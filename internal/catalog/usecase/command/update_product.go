package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product. Nil
// pointer fields keep their current values.
type UpdateProductCommand struct {
	ActorID        uint
	ID             uint
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	Stock          *int
	StockThreshold *int
	Image          *string
	SubcategoryID  *uint
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(uow domain.UnitOfWork) *UpdateProductHandler {
	return &UpdateProductHandler{uow: uow}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid product id")
	}

	var updated *domain.Product
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		product, err := repos.Products.FindByIDForUpdate(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ID)
		}

		if cmd.Name != nil {
			product.Name = *cmd.Name
		}
		if cmd.Description != nil {
			product.Description = *cmd.Description
		}
		if cmd.Price != nil {
			product.Price = *cmd.Price
		}
		if cmd.Stock != nil {
			product.Stock = *cmd.Stock
		}
		if cmd.StockThreshold != nil {
			product.StockThreshold = *cmd.StockThreshold
		}
		if cmd.Image != nil {
			product.Image = *cmd.Image
		}
		if cmd.SubcategoryID != nil {
			product.SubcategoryID = cmd.SubcategoryID
		}

		if err := validateProductFields(product.Name, product.Price, product.Stock, product.StockThreshold); err != nil {
			return err
		}

		if err := repos.Products.Update(product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		updated = product
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Product %d updated by admin %d", product.ID, cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
