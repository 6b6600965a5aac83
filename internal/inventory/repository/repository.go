package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	auditrepo "github.com/cedarmart/commerce/internal/audit/repository"
	catalogrepo "github.com/cedarmart/commerce/internal/catalog/repository"
	"github.com/cedarmart/commerce/internal/inventory/domain"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Inventory{})
}

func (r *GormInventoryRepository) Create(record *domain.Inventory) error {
	return r.db.Create(record).Error
}

func (r *GormInventoryRepository) FindByProductAndLocation(productID uint, location string) (*domain.Inventory, error) {
	var record domain.Inventory
	err := r.db.Where("product_id = ? AND location = ?", productID, location).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormInventoryRepository) FindAll() ([]domain.Inventory, error) {
	var records []domain.Inventory
	err := r.db.Find(&records).Error
	return records, err
}

func (r *GormInventoryRepository) FindByProduct(productID uint) ([]domain.Inventory, error) {
	var records []domain.Inventory
	err := r.db.Where("product_id = ?", productID).Order("stock_level DESC").Find(&records).Error
	return records, err
}

func (r *GormInventoryRepository) Update(record *domain.Inventory) error {
	return r.db.Save(record).Error
}

func (r *GormInventoryRepository) SumByProduct(productID uint) (int, error) {
	var total *int
	err := r.db.Model(&domain.Inventory{}).
		Where("product_id = ?", productID).
		Select("SUM(stock_level)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *GormInventoryRepository) LowStock() ([]domain.LowStockAlert, error) {
	var alerts []domain.LowStockAlert
	err := r.db.Table("inventories").
		Select("inventories.product_id, inventories.location, inventories.stock_level").
		Joins("JOIN products ON inventories.product_id = products.id").
		Where("inventories.stock_level <= products.stock_threshold").
		Scan(&alerts).Error
	return alerts, err
}

func (r *GormInventoryRepository) SalesReport() ([]domain.SalesReportRow, error) {
	var report []domain.SalesReportRow
	err := r.db.Table("order_items").
		Select("products.name AS product_name, SUM(order_items.quantity) AS total_sold").
		Joins("JOIN products ON order_items.product_id = products.id").
		Group("products.name").
		Order("total_sold DESC").
		Scan(&report).Error
	return report, err
}

// GormUnitOfWork executes ledger mutations and the product aggregate
// recomputation inside one transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domain.Repos{
			Inventories: NewGormInventoryRepository(tx),
			Products:    catalogrepo.NewGormProductRepository(tx),
			Audit:       auditrepo.NewGormActivityLogRepository(tx),
		})
	})
}
