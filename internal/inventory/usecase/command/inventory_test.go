package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmart/commerce/pkg/apperrors"

	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
)

func TestAddRecordRecomputesAggregateStock(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	handler := NewAddRecordHandler(f.uow)

	record, err := handler.Handle(context.Background(), AddRecordCommand{
		ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 5,
	})
	require.NoError(t, err)
	assert.NotZero(t, record.ID)

	product, _ := f.products.FindByID(1)
	assert.Equal(t, 5, product.Stock)

	_, err = handler.Handle(context.Background(), AddRecordCommand{
		ActorID: 2, ProductID: 1, Location: "Oslo", StockLevel: 3,
	})
	require.NoError(t, err)

	product, _ = f.products.FindByID(1)
	assert.Equal(t, 8, product.Stock)
}

func TestAddRecordRejectsDuplicateLocation(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	handler := NewAddRecordHandler(f.uow)

	_, err := handler.Handle(context.Background(), AddRecordCommand{
		ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 5,
	})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), AddRecordCommand{
		ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 4,
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestAddRecordValidation(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	handler := NewAddRecordHandler(f.uow)

	_, err := handler.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "  "})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: -1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 42, Location: "Berlin", StockLevel: 1})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateStockRecomputesAggregate(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	add := NewAddRecordHandler(f.uow)
	update := NewUpdateStockHandler(f.uow)

	_, err := add.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 5})
	require.NoError(t, err)
	_, err = add.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "Oslo", StockLevel: 3})
	require.NoError(t, err)

	_, err = update.Handle(context.Background(), UpdateStockCommand{ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 1})
	require.NoError(t, err)

	product, _ := f.products.FindByID(1)
	assert.Equal(t, 4, product.Stock)
}

func TestUpdateStockMissingRecord(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	update := NewUpdateStockHandler(f.uow)

	_, err := update.Handle(context.Background(), UpdateStockCommand{ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 1})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSyncOrderDrainsBestStockedLocationsFirst(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	add := NewAddRecordHandler(f.uow)

	_, err := add.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 5})
	require.NoError(t, err)
	_, err = add.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "Oslo", StockLevel: 3})
	require.NoError(t, err)

	err = NewSyncOrderHandler(f.uow).Handle(context.Background(), SyncOrderCommand{
		OrderID: 7,
		Items:   []OrderedItem{{ProductID: 1, Quantity: 6}},
	})
	require.NoError(t, err)

	berlin, _ := f.inventories.FindByProductAndLocation(1, "Berlin")
	oslo, _ := f.inventories.FindByProductAndLocation(1, "Oslo")
	assert.Equal(t, 0, berlin.StockLevel)
	assert.Equal(t, 2, oslo.StockLevel)
}

func TestSyncOrderToleratesUncoveredQuantity(t *testing.T) {
	f := newInventoryFixture(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	add := NewAddRecordHandler(f.uow)

	_, err := add.Handle(context.Background(), AddRecordCommand{ActorID: 2, ProductID: 1, Location: "Berlin", StockLevel: 3})
	require.NoError(t, err)

	err = NewSyncOrderHandler(f.uow).Handle(context.Background(), SyncOrderCommand{
		OrderID: 7,
		Items:   []OrderedItem{{ProductID: 1, Quantity: 10}},
	})
	require.NoError(t, err)

	berlin, _ := f.inventories.FindByProductAndLocation(1, "Berlin")
	assert.Equal(t, 0, berlin.StockLevel)
}
