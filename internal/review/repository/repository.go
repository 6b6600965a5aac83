package repository

import (
	"context"

	"gorm.io/gorm"

	auditrepo "github.com/cedarmart/commerce/internal/audit/repository"
	catalogrepo "github.com/cedarmart/commerce/internal/catalog/repository"
	"github.com/cedarmart/commerce/internal/review/domain"
)

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}

func (r *GormReviewRepository) Create(review *domain.Review) error {
	return r.db.Create(review).Error
}

func (r *GormReviewRepository) FindByID(id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) FindAll() ([]domain.Review, error) {
	var reviews []domain.Review
	if err := r.db.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) FindByProduct(productID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) Update(review *domain.Review) error {
	return r.db.Save(review).Error
}

func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Review{}, id).Error
}

// GormUnitOfWork executes review mutations inside one transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domain.Repos{
			Reviews:  NewGormReviewRepository(tx),
			Products: catalogrepo.NewGormProductRepository(tx),
			Audit:    auditrepo.NewGormActivityLogRepository(tx),
		})
	})
}
