package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	ActorID        uint
	Name           string
	Description    string
	Price          decimal.Decimal
	Stock          int
	StockThreshold int
	Image          string
	CategoryID     uint
	SubcategoryID  *uint
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	uow domain.UnitOfWork
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(uow domain.UnitOfWork) *CreateProductHandler {
	return &CreateProductHandler{uow: uow}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if err := validateProductFields(cmd.Name, cmd.Price, cmd.Stock, cmd.StockThreshold); err != nil {
		return nil, err
	}
	if cmd.CategoryID == 0 {
		return nil, apperrors.Validationf("category_id is required")
	}

	threshold := cmd.StockThreshold
	if threshold == 0 {
		threshold = domain.DefaultStockThreshold
	}

	product := &domain.Product{
		Name:           cmd.Name,
		Description:    cmd.Description,
		Price:          cmd.Price,
		Stock:          cmd.Stock,
		StockThreshold: threshold,
		Image:          cmd.Image,
		CategoryID:     cmd.CategoryID,
		SubcategoryID:  cmd.SubcategoryID,
	}

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Categories.FindByID(cmd.CategoryID); err != nil {
			return apperrors.NotFoundf("category %d not found", cmd.CategoryID)
		}
		if err := repos.Products.Create(product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("New product %q (id %d) added by admin %d", product.Name, product.ID, cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// validateProductFields applies the shared field rules for create and update.
func validateProductFields(name string, price decimal.Decimal, stock, threshold int) error {
	if name == "" || len(name) > 255 {
		return apperrors.Validationf("name must be between 1 and 255 characters")
	}
	if price.IsNegative() {
		return apperrors.Validationf("price must be a non-negative number")
	}
	if stock < 0 {
		return apperrors.Validationf("stock must be a non-negative number")
	}
	if threshold < 0 {
		return apperrors.Validationf("stock_threshold must be a non-negative number")
	}
	return nil
}
