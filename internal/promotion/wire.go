//go:build wireinject
// +build wireinject

package promotion

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/promotion/delivery/http"
	"github.com/cedarmart/commerce/internal/promotion/domain"
	"github.com/cedarmart/commerce/internal/promotion/repository"
)

// ProvideUnitOfWork provides the promotion unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvidePromotionRepository provides the promotion repository
func ProvidePromotionRepository(db *gorm.DB) domain.PromotionRepository {
	return repository.NewGormPromotionRepository(db)
}

// ProvideCouponRepository provides the coupon repository
func ProvideCouponRepository(db *gorm.DB) domain.CouponRepository {
	return repository.NewGormCouponRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvidePromotionRepository,
	ProvideCouponRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.PromotionHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewPromotionHandler,
	)
	return nil, nil
}
