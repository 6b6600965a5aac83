package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/pkg/apperrors"

	userdomain "github.com/cedarmart/commerce/internal/user/domain"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// fakeOrderReader serves the read methods; the embedded interface is left
// nil so an unexpected write panics the test.
type fakeOrderReader struct {
	domain.OrderRepository
	orders []domain.Order

	lastLimit  int
	lastOffset int
	byUser     bool
}

func (r *fakeOrderReader) FindByIDWithContext(_ context.Context, id uint) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderReader) FindAllWithContext(_ context.Context, limit, offset int) ([]domain.Order, error) {
	r.lastLimit, r.lastOffset, r.byUser = limit, offset, false
	return r.orders, nil
}

func (r *fakeOrderReader) FindByUserWithContext(_ context.Context, userID uint, limit, offset int) ([]domain.Order, error) {
	r.lastLimit, r.lastOffset, r.byUser = limit, offset, true
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderReader) CountWithContext(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func TestGetOrderHidesOtherCustomersOrders(t *testing.T) {
	reader := &fakeOrderReader{orders: []domain.Order{{ID: 1, UserID: 10, Status: domain.StatusPending}}}
	handler := NewGetOrderHandler(reader)

	order, err := handler.Handle(context.Background(), GetOrderQuery{OrderID: 1, ActorID: 10, ActorRole: userdomain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, uint(10), order.UserID)

	_, err = handler.Handle(context.Background(), GetOrderQuery{OrderID: 1, ActorID: 11, ActorRole: userdomain.RoleCustomer})
	assert.True(t, apperrors.IsForbidden(err))

	_, err = handler.Handle(context.Background(), GetOrderQuery{OrderID: 1, ActorID: 11, ActorRole: userdomain.RoleOrderManager})
	assert.NoError(t, err)

	_, err = handler.Handle(context.Background(), GetOrderQuery{OrderID: 99, ActorID: 10, ActorRole: userdomain.RoleCustomer})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListOrdersScopesToUserUnlessManager(t *testing.T) {
	reader := &fakeOrderReader{orders: []domain.Order{
		{ID: 1, UserID: 10},
		{ID: 2, UserID: 11},
	}}
	handler := NewListOrdersHandler(reader)

	result, err := handler.Handle(context.Background(), ListOrdersQuery{UserID: 10})
	require.NoError(t, err)
	assert.True(t, reader.byUser)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, uint(10), result.Orders[0].UserID)

	result, err = handler.Handle(context.Background(), ListOrdersQuery{})
	require.NoError(t, err)
	assert.False(t, reader.byUser)
	assert.Len(t, result.Orders, 2)
	assert.Equal(t, int64(2), result.Total)
}

func TestListOrdersPaginationBounds(t *testing.T) {
	reader := &fakeOrderReader{}
	handler := NewListOrdersHandler(reader)

	_, err := handler.Handle(context.Background(), ListOrdersQuery{Limit: -5, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 20, reader.lastLimit)
	assert.Equal(t, 0, reader.lastOffset)

	_, err = handler.Handle(context.Background(), ListOrdersQuery{Limit: 500, Offset: 40})
	require.NoError(t, err)
	assert.Equal(t, 100, reader.lastLimit)
	assert.Equal(t, 40, reader.lastOffset)
}
