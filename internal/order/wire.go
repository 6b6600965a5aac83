//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/order/delivery/http"
	"github.com/cedarmart/commerce/internal/order/domain"
	"github.com/cedarmart/commerce/internal/order/repository"
)

// ProvideUnitOfWork provides the order unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideOrderRepository provides the order repository with traced reads
func ProvideOrderRepository(db *gorm.DB) domain.OrderReader {
	return repository.NewGormOrderRepositoryWithTracing(db)
}

var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideOrderRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher domain.EventPublisher) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
