package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmart/commerce/pkg/apperrors"

	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"

	"github.com/cedarmart/commerce/internal/order/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateOrderDecrementsStockAndSnapshotsPrices(t *testing.T) {
	f := newOrderFixture(
		&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5},
		&catalogdomain.Product{ID: 2, Name: "Rug", Price: price("3.25"), Stock: 2},
	)
	handler := NewCreateOrderHandler(f.uow, f.publisher)

	order, err := handler.Handle(context.Background(), CreateOrderCommand{
		ActorID: 10,
		UserID:  10,
		Items: []OrderLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.DeliveryStandard, order.DeliveryOption)
	assert.True(t, order.TotalPrice.Equal(price("24.25")), "total was %s", order.TotalPrice)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(price("21.00")))

	lamp, _ := f.products.FindByID(1)
	rug, _ := f.products.FindByID(2)
	assert.Equal(t, 3, lamp.Stock)
	assert.Equal(t, 1, rug.Stock)
	assert.Equal(t, 1, f.publisher.placed)
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	f := newOrderFixture(
		&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5},
		&catalogdomain.Product{ID: 2, Name: "Rug", Price: price("3.25"), Stock: 1},
	)
	handler := NewCreateOrderHandler(f.uow, f.publisher)

	_, err := handler.Handle(context.Background(), CreateOrderCommand{
		ActorID: 10,
		UserID:  10,
		Items: []OrderLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientStock(err))

	// the first line's decrement must not survive the failed transaction
	lamp, _ := f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 0, f.publisher.placed)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture()
	handler := NewCreateOrderHandler(f.uow, f.publisher)

	_, err := handler.Handle(context.Background(), CreateOrderCommand{ActorID: 10, UserID: 10})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), CreateOrderCommand{
		ActorID: 10, UserID: 10,
		Items:          []OrderLine{{ProductID: 1, Quantity: 1}},
		DeliveryOption: "Teleport",
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), CreateOrderCommand{
		ActorID: 10, UserID: 10,
		Items: []OrderLine{{ProductID: 1, Quantity: 0}},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func placeOrder(t *testing.T, f *orderFixture, lines ...OrderLine) *domain.Order {
	t.Helper()
	order, err := NewCreateOrderHandler(f.uow, f.publisher).Handle(context.Background(), CreateOrderCommand{
		ActorID: 10,
		UserID:  10,
		Items:   lines,
	})
	require.NoError(t, err)
	return order
}

func setStatus(t *testing.T, f *orderFixture, orderID uint, status string) *domain.Order {
	t.Helper()
	order, err := NewUpdateStatusHandler(f.uow, f.publisher).Handle(context.Background(), UpdateStatusCommand{
		ActorID: 1,
		OrderID: orderID,
		Status:  &status,
	})
	require.NoError(t, err)
	return order
}

func TestCancelRestoresStockExactlyOnce(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 3})

	lamp, _ := f.products.FindByID(1)
	require.Equal(t, 2, lamp.Stock)

	canceled := setStatus(t, f, order.ID, domain.StatusCanceled)
	assert.True(t, canceled.StockRestored)
	assert.Equal(t, 1, f.publisher.canceled)

	lamp, _ = f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)

	// a second cancel is rejected and must not restore again
	status := domain.StatusCanceled
	_, err := NewUpdateStatusHandler(f.uow, f.publisher).Handle(context.Background(), UpdateStatusCommand{
		ActorID: 1, OrderID: order.ID, Status: &status,
	})
	assert.True(t, apperrors.IsValidation(err))
	lamp, _ = f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)
	assert.Equal(t, 1, f.publisher.canceled)
}

func TestCancelAbortsWhenProductLockFails(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 3})

	f.products.lockErr = errors.New("driver: bad connection")
	status := domain.StatusCanceled
	_, err := NewUpdateStatusHandler(f.uow, f.publisher).Handle(context.Background(), UpdateStatusCommand{
		ActorID: 1, OrderID: order.ID, Status: &status,
	})
	require.Error(t, err)

	// The transaction rolled back, so the cancel can be retried later.
	stored, _ := f.orders.FindByID(order.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.False(t, stored.StockRestored)
	assert.Equal(t, 0, f.publisher.canceled)

	f.products.lockErr = nil
	canceled := setStatus(t, f, order.ID, domain.StatusCanceled)
	assert.True(t, canceled.StockRestored)
	lamp, _ := f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)
}

func TestCancelSkipsProductsDeletedSinceOrdering(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 3})
	require.NoError(t, f.products.Delete(1))

	canceled := setStatus(t, f, order.ID, domain.StatusCanceled)
	assert.True(t, canceled.StockRestored)
	assert.Equal(t, 1, f.publisher.canceled)
}

func TestDeleteAfterCancelDoesNotRestoreTwice(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 3})
	setStatus(t, f, order.ID, domain.StatusCanceled)

	err := NewDeleteOrderHandler(f.uow).Handle(context.Background(), DeleteOrderCommand{ActorID: 1, OrderID: order.ID})
	require.NoError(t, err)

	lamp, _ := f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)
	assert.Empty(t, f.orders.orders)
}

func TestDeleteActiveOrderRestoresStock(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 2})

	err := NewDeleteOrderHandler(f.uow).Handle(context.Background(), DeleteOrderCommand{ActorID: 1, OrderID: order.ID})
	require.NoError(t, err)

	lamp, _ := f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)
}

func TestDeliveredOrdersRefuseStatusChanges(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 1})
	setStatus(t, f, order.ID, domain.StatusDelivered)

	status := domain.StatusShipped
	_, err := NewUpdateStatusHandler(f.uow, f.publisher).Handle(context.Background(), UpdateStatusCommand{
		ActorID: 1, OrderID: order.ID, Status: &status,
	})
	assert.True(t, apperrors.IsValidation(err))

	// The delivery option is locked in too once the order is terminal.
	option := domain.DeliveryExpress
	_, err = NewUpdateStatusHandler(f.uow, f.publisher).Handle(context.Background(), UpdateStatusCommand{
		ActorID: 1, OrderID: order.ID, DeliveryOption: &option,
	})
	assert.True(t, apperrors.IsValidation(err))

	stored, _ := f.orders.FindByID(order.ID)
	assert.Equal(t, domain.DeliveryStandard, stored.DeliveryOption)
}

func TestReturnRequiresDeliveredOrder(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 2})
	handler := NewReturnItemHandler(f.uow)

	_, err := handler.Handle(context.Background(), ReturnItemCommand{
		ActorID: 10, ActorRole: userdomain.RoleCustomer,
		OrderID: order.ID, OrderItemID: order.Items[0].ID, Reason: "wrong color",
	})
	assert.True(t, apperrors.IsValidation(err))

	setStatus(t, f, order.ID, domain.StatusDelivered)

	ret, err := handler.Handle(context.Background(), ReturnItemCommand{
		ActorID: 10, ActorRole: userdomain.RoleCustomer,
		OrderID: order.ID, OrderItemID: order.Items[0].ID, Reason: "wrong color",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnPending, ret.Status)

	lamp, _ := f.products.FindByID(1)
	assert.Equal(t, 5, lamp.Stock)

	updated, _ := f.orders.FindByID(order.ID)
	assert.True(t, updated.TotalPrice.Equal(price("0")), "total was %s", updated.TotalPrice)
	assert.Empty(t, updated.Items)
}

func TestReturnAbortsWhenProductLockFails(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 2})
	setStatus(t, f, order.ID, domain.StatusDelivered)

	f.products.lockErr = errors.New("driver: bad connection")
	_, err := NewReturnItemHandler(f.uow).Handle(context.Background(), ReturnItemCommand{
		ActorID: 10, ActorRole: userdomain.RoleCustomer,
		OrderID: order.ID, OrderItemID: order.Items[0].ID, Reason: "wrong color",
	})
	require.Error(t, err)

	stored, _ := f.orders.FindByID(order.ID)
	assert.True(t, stored.TotalPrice.Equal(price("21.00")), "total was %s", stored.TotalPrice)
	assert.Len(t, stored.Items, 1)
	assert.Empty(t, f.orders.returns)
}

func TestReturnRequiresOwnerOrOrderManager(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 1})
	setStatus(t, f, order.ID, domain.StatusDelivered)
	handler := NewReturnItemHandler(f.uow)

	_, err := handler.Handle(context.Background(), ReturnItemCommand{
		ActorID: 99, ActorRole: userdomain.RoleCustomer,
		OrderID: order.ID, OrderItemID: order.Items[0].ID, Reason: "not mine",
	})
	assert.True(t, apperrors.IsForbidden(err))

	_, err = handler.Handle(context.Background(), ReturnItemCommand{
		ActorID: 99, ActorRole: userdomain.RoleOrderManager,
		OrderID: order.ID, OrderItemID: order.Items[0].ID, Reason: "damaged in transit",
	})
	require.NoError(t, err)
}

func TestUpdateReturnStatus(t *testing.T) {
	f := newOrderFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Price: price("10.50"), Stock: 5})
	order := placeOrder(t, f, OrderLine{ProductID: 1, Quantity: 1})
	setStatus(t, f, order.ID, domain.StatusDelivered)

	ret, err := NewReturnItemHandler(f.uow).Handle(context.Background(), ReturnItemCommand{
		ActorID: 10, ActorRole: userdomain.RoleCustomer,
		OrderID: order.ID, OrderItemID: order.Items[0].ID, Reason: "wrong color",
	})
	require.NoError(t, err)

	handler := NewUpdateReturnHandler(f.uow)

	_, err = handler.Handle(context.Background(), UpdateReturnCommand{ActorID: 1, ReturnID: ret.ID, Status: "Lost"})
	assert.True(t, apperrors.IsValidation(err))

	updated, err := handler.Handle(context.Background(), UpdateReturnCommand{ActorID: 1, ReturnID: ret.ID, Status: domain.ReturnApproved})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnApproved, updated.Status)

	_, err = handler.Handle(context.Background(), UpdateReturnCommand{ActorID: 1, ReturnID: 999, Status: domain.ReturnDenied})
	assert.True(t, apperrors.IsNotFound(err))
}
