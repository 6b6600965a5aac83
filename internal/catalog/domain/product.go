package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock level classifications returned by CheckStockLevel.
const (
	StockLevelLow     = "Low Stock"
	StockLevelInStock = "In Stock"
)

// DefaultStockThreshold is applied when a product is created without an
// explicit threshold.
const DefaultStockThreshold = 10

// Product represents the product entity. Stock is the authoritative
// quantity available for sale; it is mutated only through catalog, cart,
// order and inventory operations.
type Product struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:255;not null"`
	Description    string          `json:"description" gorm:"type:text"`
	Price          decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Stock          int             `json:"stock" gorm:"not null;default:0"`
	StockThreshold int             `json:"stock_threshold" gorm:"not null;default:10"`
	Image          string          `json:"image" gorm:"size:255"`
	CategoryID     uint            `json:"category_id" gorm:"not null;index"`
	SubcategoryID  *uint           `json:"subcategory_id" gorm:"index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// CheckStockLevel classifies the product's stock against its threshold.
// Pure function, no side effects.
func (p *Product) CheckStockLevel() string {
	if p.Stock <= p.StockThreshold {
		return StockLevelLow
	}
	return StockLevelInStock
}

// Category groups products.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Subcategory is a second-level grouping under a category.
type Subcategory struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"size:255;not null"`
	CategoryID uint   `json:"category_id" gorm:"not null;index"`
}

// TableName specifies the table name
func (Subcategory) TableName() string {
	return "subcategories"
}

// ProductRepository defines the contract for product data access.
// FindByIDForUpdate must take a row lock so check-then-mutate sequences on
// stock are safe under concurrent requests.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindByIDForUpdate(id uint) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(categoryID uint, limit, offset int) ([]Product, error)
	Update(product *Product) error
	UpdateStock(id uint, stock int) error
	Delete(id uint) error
	Count() (int64, error)
}

// ProductReader adds context-aware reads on top of ProductRepository for
// the query side, where a request span is available to attach to.
type ProductReader interface {
	ProductRepository
	FindByIDWithContext(ctx context.Context, id uint) (*Product, error)
	FindAllWithContext(ctx context.Context, limit, offset int) ([]Product, error)
	FindByCategoryWithContext(ctx context.Context, categoryID uint, limit, offset int) ([]Product, error)
}

// CategoryRepository defines the contract for category data access.
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindAll() ([]Category, error)
	Update(category *Category) error
	Delete(id uint) error
}

// SubcategoryRepository defines the contract for subcategory data access.
type SubcategoryRepository interface {
	Create(subcategory *Subcategory) error
	FindByID(id uint) (*Subcategory, error)
	FindByCategory(categoryID uint) ([]Subcategory, error)
	Update(subcategory *Subcategory) error
	Delete(id uint) error
}
