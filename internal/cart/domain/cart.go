package domain

import (
	"context"
	"time"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
)

// Cart holds a user's reserved items. One cart per user; quantities in the
// cart are already subtracted from product stock.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a single product line in a cart.
type CartItem struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CartID    uint `json:"cart_id" gorm:"index:idx_cart_product,unique;not null"`
	ProductID uint `json:"product_id" gorm:"index:idx_cart_product,unique;not null"`
	Quantity  int  `json:"quantity" gorm:"not null;default:1"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// CartRepository defines the contract for cart data access. FindItem
// returns (nil, nil) when the cart has no line for the product.
type CartRepository interface {
	FindByUserID(userID uint) (*Cart, error)
	FindOrCreateByUserID(userID uint) (*Cart, error)
	FindItem(cartID, productID uint) (*CartItem, error)
	CreateItem(item *CartItem) error
	UpdateItem(item *CartItem) error
	DeleteItem(id uint) error
	DeleteItems(cartID uint) error
}

// Repos bundles the repositories a cart transaction operates on.
type Repos struct {
	Carts    CartRepository
	Products catalogdomain.ProductRepository
	Audit    auditdomain.Recorder
}

// UnitOfWork runs fn inside a single transaction. Stock adjustments and
// cart mutations commit or roll back together.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(Repos) error) error
}
