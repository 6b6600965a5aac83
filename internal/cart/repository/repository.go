package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	auditrepo "github.com/cedarmart/commerce/internal/audit/repository"
	"github.com/cedarmart/commerce/internal/cart/domain"
	catalogrepo "github.com/cedarmart/commerce/internal/catalog/repository"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Cart{}, &domain.CartItem{})
}

func (r *GormCartRepository) FindByUserID(userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) FindOrCreateByUserID(userID uint) (*domain.Cart, error) {
	cart, err := r.FindByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &domain.Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *GormCartRepository) FindItem(cartID, productID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) CreateItem(item *domain.CartItem) error {
	return r.db.Create(item).Error
}

func (r *GormCartRepository) UpdateItem(item *domain.CartItem) error {
	return r.db.Save(item).Error
}

func (r *GormCartRepository) DeleteItem(id uint) error {
	return r.db.Delete(&domain.CartItem{}, id).Error
}

func (r *GormCartRepository) DeleteItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error
}

// GormUnitOfWork executes cart mutations and the matching stock adjustments
// inside one transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domain.Repos{
			Carts:    NewGormCartRepository(tx),
			Products: catalogrepo.NewGormProductRepository(tx),
			Audit:    auditrepo.NewGormActivityLogRepository(tx),
		})
	})
}
