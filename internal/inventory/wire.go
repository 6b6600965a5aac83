//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/inventory/delivery/http"
	"github.com/cedarmart/commerce/internal/inventory/domain"
	"github.com/cedarmart/commerce/internal/inventory/repository"
)

// ProvideUnitOfWork provides the inventory unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideInventoryRepository provides the inventory repository
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewGormInventoryRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideInventoryRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
