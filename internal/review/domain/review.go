package domain

import (
	"context"
	"time"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
)

// Review represents a customer review of a product
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(review *Review) error
	FindByID(id uint) (*Review, error)
	FindAll() ([]Review, error)
	FindByProduct(productID uint) ([]Review, error)
	Update(review *Review) error
	Delete(id uint) error
}

// Repos groups the repositories available inside a review transaction
type Repos struct {
	Reviews  ReviewRepository
	Products catalogdomain.ProductRepository
	Audit    auditdomain.Recorder
}

// UnitOfWork runs a function within a database transaction
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repos) error) error
}
