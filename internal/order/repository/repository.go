package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditrepo "github.com/cedarmart/commerce/internal/audit/repository"
	catalogrepo "github.com/cedarmart/commerce/internal/catalog/repository"
	"github.com/cedarmart/commerce/internal/order/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}, &domain.Return{})
}

func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Create(order).Error
}

func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate reads the order row under a row lock, then loads its
// items. Only meaningful inside a transaction.
func (r *GormOrderRepository) FindByIDForUpdate(id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindByUser(userID uint, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) Update(order *domain.Order) error {
	return r.db.Omit("Items").Save(order).Error
}

// Delete removes the order together with its items and their returns.
func (r *GormOrderRepository) Delete(id uint) error {
	err := r.db.Exec(
		"DELETE FROM returns WHERE order_item_id IN (SELECT id FROM order_items WHERE order_id = ?)", id,
	).Error
	if err != nil {
		return err
	}
	if err := r.db.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Order{}, id).Error
}

func (r *GormOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) FindItem(orderID, itemID uint) (*domain.OrderItem, error) {
	var item domain.OrderItem
	err := r.db.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes one order item and its returns.
func (r *GormOrderRepository) DeleteItem(id uint) error {
	if err := r.db.Where("order_item_id = ?", id).Delete(&domain.Return{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.OrderItem{}, id).Error
}

func (r *GormOrderRepository) CreateReturn(ret *domain.Return) error {
	return r.db.Create(ret).Error
}

func (r *GormOrderRepository) FindReturnByID(id uint) (*domain.Return, error) {
	var ret domain.Return
	err := r.db.First(&ret, id).Error
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *GormOrderRepository) FindAllReturns(limit, offset int) ([]domain.Return, error) {
	var returns []domain.Return
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&returns).Error
	return returns, err
}

func (r *GormOrderRepository) UpdateReturn(ret *domain.Return) error {
	return r.db.Save(ret).Error
}

// GormUnitOfWork executes order mutations and the matching stock movements
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
			Orders:   NewGormOrderRepository(tx),
			Products: catalogrepo.NewGormProductRepository(tx),
			Audit:    auditrepo.NewGormActivityLogRepository(tx),
		})
	})
}
