package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

// LowStockAlertsQuery represents the query for locations at or below their
// product's stock threshold.
type LowStockAlertsQuery struct{}

// LowStockAlertsHandler handles the low stock alerts query
type LowStockAlertsHandler struct {
	inventories domain.InventoryRepository
}

// NewLowStockAlertsHandler creates a new low stock alerts handler
func NewLowStockAlertsHandler(inventories domain.InventoryRepository) *LowStockAlertsHandler {
	return &LowStockAlertsHandler{inventories: inventories}
}

// Handle executes the low stock alerts query
func (h *LowStockAlertsHandler) Handle(query LowStockAlertsQuery) ([]domain.LowStockAlert, error) {
	alerts, err := h.inventories.LowStock()
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock alerts: %w", err)
	}
	return alerts, nil
}
