//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/cart/delivery/http"
	"github.com/cedarmart/commerce/internal/cart/domain"
	"github.com/cedarmart/commerce/internal/cart/repository"
)

// ProvideUnitOfWork provides the cart unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideCartRepository provides the cart repository
func ProvideCartRepository(db *gorm.DB) domain.CartRepository {
	return repository.NewGormCartRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideCartRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CartHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCartHandler,
	)
	return nil, nil
}
