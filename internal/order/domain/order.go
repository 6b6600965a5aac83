package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
)

// Order statuses. Delivered and Canceled are terminal.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCanceled   = "Canceled"
)

// Delivery options.
const (
	DeliveryStandard      = "Standard"
	DeliveryExpress       = "Express"
	DeliveryInStorePickup = "In-Store Pickup"
)

// Return statuses.
const (
	ReturnPending   = "Pending"
	ReturnApproved  = "Approved"
	ReturnDenied    = "Denied"
	ReturnCompleted = "Completed"
)

// ValidStatus reports whether status is one of the known order statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// ValidDeliveryOption reports whether option is a known delivery option.
func ValidDeliveryOption(option string) bool {
	switch option {
	case DeliveryStandard, DeliveryExpress, DeliveryInStorePickup:
		return true
	}
	return false
}

// ValidReturnStatus reports whether status is a known return status.
func ValidReturnStatus(status string) bool {
	switch status {
	case ReturnPending, ReturnApproved, ReturnDenied, ReturnCompleted:
		return true
	}
	return false
}

// Order is a priced, stock-decrementing purchase. StockRestored guards the
// restore routine so cancellation followed by deletion cannot return the
// same units to stock twice.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderNumber    string          `json:"order_number" gorm:"size:36;uniqueIndex;not null"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:numeric(10,2);not null"`
	OrderDate      time.Time       `json:"order_date"`
	Status         string          `json:"status" gorm:"size:16;not null;default:'Pending'"`
	DeliveryOption string          `json:"delivery_option" gorm:"size:32"`
	CouponID       *uint           `json:"coupon_id"`
	StockRestored  bool            `json:"-" gorm:"not null;default:false"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// IsTerminal reports whether the order has reached a terminal status.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCanceled
}

// OrderItem is a line of an order. Price is quantity times the unit price
// at the moment the order was created; later catalog price changes do not
// touch it.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"index;not null"`
	ProductID uint            `json:"product_id" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// Return is a return request for a single order item.
type Return struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderItemID uint      `json:"order_item_id" gorm:"index;not null"`
	Reason      string    `json:"reason" gorm:"size:255;not null"`
	Status      string    `json:"status" gorm:"size:16;not null;default:'Pending'"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Return) TableName() string {
	return "returns"
}

// OrderRepository defines the contract for order data access. FindItem
// returns (nil, nil) when the order has no such item.
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	FindByIDForUpdate(id uint) (*Order, error)
	FindAll(limit, offset int) ([]Order, error)
	FindByUser(userID uint, limit, offset int) ([]Order, error)
	Update(order *Order) error
	Delete(id uint) error
	Count() (int64, error)

	FindItem(orderID, itemID uint) (*OrderItem, error)
	DeleteItem(id uint) error

	CreateReturn(ret *Return) error
	FindReturnByID(id uint) (*Return, error)
	FindAllReturns(limit, offset int) ([]Return, error)
	UpdateReturn(ret *Return) error
}

// OrderReader adds context-aware reads on top of OrderRepository for the
// query side, where a request span is available to attach to.
type OrderReader interface {
	OrderRepository
	FindByIDWithContext(ctx context.Context, id uint) (*Order, error)
	FindAllWithContext(ctx context.Context, limit, offset int) ([]Order, error)
	FindByUserWithContext(ctx context.Context, userID uint, limit, offset int) ([]Order, error)
	CountWithContext(ctx context.Context) (int64, error)
}

// Repos bundles the repositories an order transaction operates on.
type Repos struct {
	Orders   OrderRepository
	Products catalogdomain.ProductRepository
	Audit    auditdomain.Recorder
}

// UnitOfWork runs fn inside a single transaction. Stock movements, order
// writes and audit entries commit or roll back together.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(Repos) error) error
}

// EventPublisher emits order lifecycle events after the owning transaction
// has committed.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, order *Order) error
	OrderCanceled(ctx context.Context, order *Order) error
}
