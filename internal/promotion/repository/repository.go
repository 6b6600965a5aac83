package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditrepo "github.com/cedarmart/commerce/internal/audit/repository"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
	orderrepo "github.com/cedarmart/commerce/internal/order/repository"
	"github.com/cedarmart/commerce/internal/promotion/domain"
)

type GormPromotionRepository struct {
	db *gorm.DB
}

func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

func (r *GormPromotionRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Promotion{}, &domain.PromotionProduct{}, &domain.Coupon{})
}

func (r *GormPromotionRepository) Create(promotion *domain.Promotion) error {
	return r.db.Create(promotion).Error
}

func (r *GormPromotionRepository) FindByID(id uint) (*domain.Promotion, error) {
	var promotion domain.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadProductIDs(&promotion); err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *GormPromotionRepository) FindAll() ([]domain.Promotion, error) {
	var promotions []domain.Promotion
	if err := r.db.Find(&promotions).Error; err != nil {
		return nil, err
	}
	for i := range promotions {
		if err := r.loadProductIDs(&promotions[i]); err != nil {
			return nil, err
		}
	}
	return promotions, nil
}

func (r *GormPromotionRepository) loadProductIDs(promotion *domain.Promotion) error {
	var ids []uint
	err := r.db.Model(&domain.PromotionProduct{}).
		Where("promotion_id = ?", promotion.ID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return err
	}
	promotion.ProductIDs = ids
	return nil
}

func (r *GormPromotionRepository) Update(promotion *domain.Promotion) error {
	return r.db.Save(promotion).Error
}

func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Promotion{}, id).Error
}

func (r *GormPromotionRepository) ReplaceProducts(promotionID uint, productIDs []uint) error {
	if err := r.DetachProducts(promotionID); err != nil {
		return err
	}
	for _, pid := range productIDs {
		var count int64
		if err := r.db.Model(&catalogdomain.Product{}).Where("id = ?", pid).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			continue
		}
		join := domain.PromotionProduct{PromotionID: promotionID, ProductID: pid}
		if err := r.db.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormPromotionRepository) DetachProducts(promotionID uint) error {
	return r.db.Where("promotion_id = ?", promotionID).Delete(&domain.PromotionProduct{}).Error
}

type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Create(coupon *domain.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *GormCouponRepository) FindByID(id uint) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.db.First(&coupon, id).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormCouponRepository) FindByCode(code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.db.Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindByCodeForUpdate reads the coupon under a row lock so the usage count
// increment cannot race a concurrent application.
func (r *GormCouponRepository) FindByCodeForUpdate(code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindForUser returns the user's coupons plus universal ones.
func (r *GormCouponRepository) FindForUser(userID uint) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	err := r.db.Where("user_id = ? OR user_id IS NULL", userID).Find(&coupons).Error
	return coupons, err
}

func (r *GormCouponRepository) Update(coupon *domain.Coupon) error {
	return r.db.Save(coupon).Error
}

func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Coupon{}, id).Error
}

// GormUnitOfWork executes promotion and coupon mutations inside one
// transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domain.Repos{
			Promotions: NewGormPromotionRepository(tx),
			Coupons:    NewGormCouponRepository(tx),
			Orders:     orderrepo.NewGormOrderRepository(tx),
			Audit:      auditrepo.NewGormActivityLogRepository(tx),
		})
	})
}
