package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository so query-side
// reads record spans under the incoming request trace. Writes run inside a
// unit of work on a transaction-scoped repository and are traced at the
// HTTP layer instead.
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

var _ domain.ProductReader = (*GormProductRepositoryWithTracing)(nil)

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// FindByIDWithContext records a span around FindByID
func (r *GormProductRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uint) (*domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	product, err := r.GormProductRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.Int("product.stock", product.Stock),
	)
	return product, nil
}

// FindAllWithContext records a span around FindAll
func (r *GormProductRepositoryWithTracing) FindAllWithContext(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	span.SetAttributes(
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)

	products, err := r.GormProductRepository.FindAll(limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

// FindByCategoryWithContext records a span around FindByCategory
func (r *GormProductRepositoryWithTracing) FindByCategoryWithContext(ctx context.Context, categoryID uint, limit, offset int) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindByCategory")
	defer span.End()

	span.SetAttributes(
		attribute.Int("category.id", int(categoryID)),
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)

	products, err := r.GormProductRepository.FindByCategory(categoryID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}
