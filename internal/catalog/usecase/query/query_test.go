package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// fakeProductReader serves the read methods; the embedded interface is left
// nil so an unexpected write panics the test.
type fakeProductReader struct {
	domain.ProductRepository
	products []domain.Product

	lastLimit  int
	byCategory bool
}

func (r *fakeProductReader) FindByIDWithContext(_ context.Context, id uint) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductReader) FindAllWithContext(_ context.Context, limit, offset int) ([]domain.Product, error) {
	r.lastLimit, r.byCategory = limit, false
	return r.products, nil
}

func (r *fakeProductReader) FindByCategoryWithContext(_ context.Context, categoryID uint, limit, offset int) ([]domain.Product, error) {
	r.lastLimit, r.byCategory = limit, true
	var out []domain.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestGetProductClassifiesStock(t *testing.T) {
	reader := &fakeProductReader{products: []domain.Product{
		{ID: 1, Name: "Lamp", Stock: 3, StockThreshold: 10},
		{ID: 2, Name: "Rug", Stock: 40, StockThreshold: 10},
	}}
	handler := NewGetProductHandler(reader)

	view, err := handler.Handle(context.Background(), GetProductQuery{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StockLevelLow, view.StockLevel)

	view, err = handler.Handle(context.Background(), GetProductQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.StockLevelInStock, view.StockLevel)

	_, err = handler.Handle(context.Background(), GetProductQuery{ID: 99})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListProductsFiltersByCategory(t *testing.T) {
	reader := &fakeProductReader{products: []domain.Product{
		{ID: 1, Name: "Lamp", CategoryID: 1, StockThreshold: 10},
		{ID: 2, Name: "Rug", CategoryID: 2, StockThreshold: 10},
	}}
	handler := NewListProductsHandler(reader)

	views, err := handler.Handle(context.Background(), ListProductsQuery{CategoryID: 2})
	require.NoError(t, err)
	assert.True(t, reader.byCategory)
	require.Len(t, views, 1)
	assert.Equal(t, "Rug", views[0].Name)

	views, err = handler.Handle(context.Background(), ListProductsQuery{})
	require.NoError(t, err)
	assert.False(t, reader.byCategory)
	assert.Len(t, views, 2)
	assert.Equal(t, 20, reader.lastLimit)
}
