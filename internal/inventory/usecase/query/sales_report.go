package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

// SalesReportQuery represents the query for units sold per product
type SalesReportQuery struct{}

// SalesReportHandler handles the sales report query
type SalesReportHandler struct {
	inventories domain.InventoryRepository
}

// NewSalesReportHandler creates a new sales report handler
func NewSalesReportHandler(inventories domain.InventoryRepository) *SalesReportHandler {
	return &SalesReportHandler{inventories: inventories}
}

// Handle executes the sales report query
func (h *SalesReportHandler) Handle(query SalesReportQuery) ([]domain.SalesReportRow, error) {
	rows, err := h.inventories.SalesReport()
	if err != nil {
		return nil, fmt.Errorf("failed to build sales report: %w", err)
	}
	return rows, nil
}
