//go:build wireinject
// +build wireinject

package review

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/review/delivery/http"
	"github.com/cedarmart/commerce/internal/review/domain"
	"github.com/cedarmart/commerce/internal/review/repository"
)

// ProvideUnitOfWork provides the review unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideReviewRepository provides the review repository
func ProvideReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return repository.NewGormReviewRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideReviewRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ReviewHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewReviewHandler,
	)
	return nil, nil
}
