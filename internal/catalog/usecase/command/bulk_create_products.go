package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// ProductRow is one pre-parsed row of a bulk upload. Transport-level
// parsing and scanning happen upstream; only field presence and ranges are
// checked here.
type ProductRow struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	Stock          int
	StockThreshold int
	Image          string
	CategoryID     uint
	SubcategoryID  *uint
}

// BulkCreateProductsCommand represents the command to create many products
// at once.
type BulkCreateProductsCommand struct {
	ActorID uint
	Rows    []ProductRow
}

// BulkCreateProductsHandler handles bulk product creation
type BulkCreateProductsHandler struct {
	uow domain.UnitOfWork
}

// NewBulkCreateProductsHandler creates a new bulk create handler
func NewBulkCreateProductsHandler(uow domain.UnitOfWork) *BulkCreateProductsHandler {
	return &BulkCreateProductsHandler{uow: uow}
}

// Handle executes the bulk create command. The whole batch is one
// transaction: one bad row rejects the upload.
func (h *BulkCreateProductsHandler) Handle(ctx context.Context, cmd BulkCreateProductsCommand) (int, error) {
	if len(cmd.Rows) == 0 {
		return 0, apperrors.Validationf("no rows to upload")
	}

	for i, row := range cmd.Rows {
		if row.CategoryID == 0 {
			return 0, apperrors.Validationf("row %d: category_id is required", i+1)
		}
		if err := validateProductFields(row.Name, row.Price, row.Stock, row.StockThreshold); err != nil {
			return 0, apperrors.Validationf("row %d: %v", i+1, err)
		}
	}

	added := 0
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		for _, row := range cmd.Rows {
			threshold := row.StockThreshold
			if threshold == 0 {
				threshold = domain.DefaultStockThreshold
			}
			product := &domain.Product{
				Name:           row.Name,
				Description:    row.Description,
				Price:          row.Price,
				Stock:          row.Stock,
				StockThreshold: threshold,
				Image:          row.Image,
				CategoryID:     row.CategoryID,
				SubcategoryID:  row.SubcategoryID,
			}
			if err := repos.Products.Create(product); err != nil {
				return fmt.Errorf("failed to create product %q: %w", row.Name, err)
			}
			added++
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Bulk upload by admin %d added %d products", cmd.ActorID, added))
	})
	if err != nil {
		return 0, err
	}

	return added, nil
}
