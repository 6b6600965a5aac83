package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditrepo "github.com/cedarmart/commerce/internal/audit/repository"
	"github.com/cedarmart/commerce/internal/catalog/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{}, &domain.Subcategory{}, &domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate reads the product under a row lock. Only meaningful
// inside a transaction.
func (r *GormProductRepository) FindByIDForUpdate(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(categoryID uint, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("category_id = ?", categoryID).Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) UpdateStock(id uint, stock int) error {
	return r.db.Model(&domain.Product{}).Where("id = ?", id).Update("stock", stock).Error
}

// Delete removes the product and its dependent rows: inventory records and
// promotion associations are dropped, cart items and order items referencing
// the product are removed with their carts' reservations already counted in
// the product row being deleted.
func (r *GormProductRepository) Delete(id uint) error {
	if err := r.db.Exec("DELETE FROM inventories WHERE product_id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.Exec("DELETE FROM promotion_products WHERE product_id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.Exec("DELETE FROM cart_items WHERE product_id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.Exec("DELETE FROM order_items WHERE product_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll() ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Category{}, id).Error
}

type GormSubcategoryRepository struct {
	db *gorm.DB
}

func NewGormSubcategoryRepository(db *gorm.DB) *GormSubcategoryRepository {
	return &GormSubcategoryRepository{db: db}
}

func (r *GormSubcategoryRepository) Create(subcategory *domain.Subcategory) error {
	return r.db.Create(subcategory).Error
}

func (r *GormSubcategoryRepository) FindByID(id uint) (*domain.Subcategory, error) {
	var subcategory domain.Subcategory
	err := r.db.First(&subcategory, id).Error
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (r *GormSubcategoryRepository) FindByCategory(categoryID uint) ([]domain.Subcategory, error) {
	var subcategories []domain.Subcategory
	err := r.db.Where("category_id = ?", categoryID).Find(&subcategories).Error
	return subcategories, err
}

func (r *GormSubcategoryRepository) Update(subcategory *domain.Subcategory) error {
	return r.db.Save(subcategory).Error
}

func (r *GormSubcategoryRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Subcategory{}, id).Error
}

// GormUnitOfWork executes catalog mutations inside one transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domain.Repos{
			Products:      NewGormProductRepository(tx),
			Categories:    NewGormCategoryRepository(tx),
			Subcategories: NewGormSubcategoryRepository(tx),
			Audit:         auditrepo.NewGormActivityLogRepository(tx),
		})
	})
}
