package command

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// restoreStock returns every item's quantity to its product's stock. The
// product rows are locked one by one; products deleted since the order was
// placed are skipped, any other read failure aborts the transaction.
func restoreStock(repos domain.Repos, items []domain.OrderItem) error {
	for _, item := range items {
		product, err := repos.Products.FindByIDForUpdate(item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to lock product %d: %w", item.ProductID, err)
		}
		if err := repos.Products.UpdateStock(product.ID, product.Stock+item.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, err)
		}
	}
	return nil
}
