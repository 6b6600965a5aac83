//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/catalog/delivery/http"
	"github.com/cedarmart/commerce/internal/catalog/domain"
	"github.com/cedarmart/commerce/internal/catalog/repository"
)

// ProvideUnitOfWork provides the catalog unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideProductRepository provides the product repository with traced reads
func ProvideProductRepository(db *gorm.DB) domain.ProductReader {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideSubcategoryRepository provides the subcategory repository
func ProvideSubcategoryRepository(db *gorm.DB) domain.SubcategoryRepository {
	return repository.NewGormSubcategoryRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideSubcategoryRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
