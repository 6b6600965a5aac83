package domain

import (
	"context"
	"time"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
)

// Inventory is one warehouse record: the stock a product holds at a single
// location. A product's aggregate stock is the sum of its records.
type Inventory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"product_id" gorm:"index:idx_product_location,unique;not null"`
	Location    string    `json:"location" gorm:"size:255;index:idx_product_location,unique;not null"`
	StockLevel  int       `json:"stock_level" gorm:"not null;default:0"`
	LastUpdated time.Time `json:"last_updated" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventories"
}

// LowStockAlert flags a location whose stock fell to or below the
// product's threshold.
type LowStockAlert struct {
	ProductID  uint   `json:"product_id"`
	Location   string `json:"location"`
	StockLevel int    `json:"stock_level"`
}

// SalesReportRow is one line of the sold-quantity report.
type SalesReportRow struct {
	ProductName string `json:"product_name"`
	TotalSold   int    `json:"total_sold"`
}

// InventoryRepository defines the contract for inventory data access.
// FindByProductAndLocation returns (nil, nil) when no record exists for
// the pair.
type InventoryRepository interface {
	Create(record *Inventory) error
	FindByProductAndLocation(productID uint, location string) (*Inventory, error)
	FindAll() ([]Inventory, error)
	FindByProduct(productID uint) ([]Inventory, error)
	Update(record *Inventory) error
	// SumByProduct returns the total stock across every location of the
	// product.
	SumByProduct(productID uint) (int, error)
	LowStock() ([]LowStockAlert, error)
	SalesReport() ([]SalesReportRow, error)
}

// Repos bundles the repositories an inventory transaction operates on.
type Repos struct {
	Inventories InventoryRepository
	Products    catalogdomain.ProductRepository
	Audit       auditdomain.Recorder
}

// UnitOfWork runs fn inside a single transaction so ledger writes and the
// product aggregate recomputation commit together.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(Repos) error) error
}
