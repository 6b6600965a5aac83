package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

// ListInventoryQuery represents the query to list all inventory records
type ListInventoryQuery struct{}

// ListInventoryHandler handles the list inventory query
type ListInventoryHandler struct {
	inventories domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(inventories domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{inventories: inventories}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(query ListInventoryQuery) ([]domain.Inventory, error) {
	records, err := h.inventories.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return records, nil
}
