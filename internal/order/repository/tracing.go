package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// GormOrderRepositoryWithTracing wraps GormOrderRepository so query-side
// reads record spans under the incoming request trace. Writes run inside a
// unit of work on a transaction-scoped repository and are traced at the
// HTTP layer instead.
type GormOrderRepositoryWithTracing struct {
	*GormOrderRepository
}

var _ domain.OrderReader = (*GormOrderRepositoryWithTracing)(nil)

// NewGormOrderRepositoryWithTracing creates a new repository with tracing
func NewGormOrderRepositoryWithTracing(db *gorm.DB) *GormOrderRepositoryWithTracing {
	return &GormOrderRepositoryWithTracing{
		GormOrderRepository: NewGormOrderRepository(db),
	}
}

// FindByIDWithContext records a span around FindByID
func (r *GormOrderRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uint) (*domain.Order, error) {
	_, span := tracer.Start(ctx, "repository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int("order.id", int(id)))

	order, err := r.GormOrderRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.status", order.Status),
		attribute.Int("order.item_count", len(order.Items)),
	)
	return order, nil
}

// FindAllWithContext records a span around FindAll
func (r *GormOrderRepositoryWithTracing) FindAllWithContext(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	_, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	span.SetAttributes(
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)

	orders, err := r.GormOrderRepository.FindAll(limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

// FindByUserWithContext records a span around FindByUser
func (r *GormOrderRepositoryWithTracing) FindByUserWithContext(ctx context.Context, userID uint, limit, offset int) ([]domain.Order, error) {
	_, span := tracer.Start(ctx, "repository.FindByUser")
	defer span.End()

	span.SetAttributes(
		attribute.Int("order.user_id", int(userID)),
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)

	orders, err := r.GormOrderRepository.FindByUser(userID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

// CountWithContext records a span around Count
func (r *GormOrderRepositoryWithTracing) CountWithContext(ctx context.Context) (int64, error) {
	_, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	total, err := r.GormOrderRepository.Count()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int("result.count", int(total)))
	return total, nil
}
