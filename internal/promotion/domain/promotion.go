package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	orderdomain "github.com/cedarmart/commerce/internal/order/domain"
)

// Promotion is a time-bounded percentage discount, optionally scoped to a
// set of products and membership tiers.
type Promotion struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	Name               string          `json:"name" gorm:"size:255;not null"`
	Description        string          `json:"description" gorm:"type:text"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" gorm:"type:numeric(5,2);not null"`
	StartDate          time.Time       `json:"start_date" gorm:"not null"`
	EndDate            time.Time       `json:"end_date" gorm:"not null"`
	ApplicableTiers    string          `json:"applicable_tiers" gorm:"size:255;not null"`
	ProductIDs         []uint          `json:"product_ids" gorm:"-"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Promotion) TableName() string {
	return "promotions"
}

// IsActive reports whether now falls inside the promotion window.
func (p *Promotion) IsActive(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// PromotionProduct links a promotion to one product.
type PromotionProduct struct {
	PromotionID uint `json:"promotion_id" gorm:"primaryKey"`
	ProductID   uint `json:"product_id" gorm:"primaryKey"`
}

// TableName specifies the table name
func (PromotionProduct) TableName() string {
	return "promotion_products"
}

// Coupon redeems a promotion's discount, optionally bound to one user and
// capped by a usage limit.
type Coupon struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Code           string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	PromotionID    uint      `json:"promotion_id" gorm:"not null"`
	UserID         *uint     `json:"user_id"`
	ExpirationDate time.Time `json:"expiration_date" gorm:"not null"`
	UsageLimit     *int      `json:"usage_limit"`
	UsageCount     int       `json:"usage_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Coupon) TableName() string {
	return "coupons"
}

// IsValid reports whether the coupon can still be redeemed at now.
func (c *Coupon) IsValid(now time.Time) bool {
	if c.ExpirationDate.Before(now) {
		return false
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return false
	}
	return true
}

// PromotionRepository defines the contract for promotion data access.
type PromotionRepository interface {
	Create(promotion *Promotion) error
	FindByID(id uint) (*Promotion, error)
	FindAll() ([]Promotion, error)
	Update(promotion *Promotion) error
	Delete(id uint) error
	// ReplaceProducts swaps the promotion's product associations for the
	// given set, skipping product ids that do not exist.
	ReplaceProducts(promotionID uint, productIDs []uint) error
	// DetachProducts removes all product associations for the promotion.
	DetachProducts(promotionID uint) error
}

// CouponRepository defines the contract for coupon data access. FindByCode
// variants return gorm's not-found error when the code is unknown.
type CouponRepository interface {
	Create(coupon *Coupon) error
	FindByID(id uint) (*Coupon, error)
	FindByCode(code string) (*Coupon, error)
	FindByCodeForUpdate(code string) (*Coupon, error)
	FindForUser(userID uint) ([]Coupon, error)
	Update(coupon *Coupon) error
	Delete(id uint) error
}

// Repos bundles the repositories a promotion transaction operates on.
type Repos struct {
	Promotions PromotionRepository
	Coupons    CouponRepository
	Orders     orderdomain.OrderRepository
	Audit      auditdomain.Recorder
}

// UnitOfWork runs fn inside a single transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(Repos) error) error
}
