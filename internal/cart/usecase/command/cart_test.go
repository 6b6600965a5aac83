package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmart/commerce/pkg/apperrors"

	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
)

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	handler := NewAddItemHandler(f.uow)

	item, err := handler.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, item.Quantity)
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 4, product.Stock)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 10})
	handler := NewAddItemHandler(f.uow)

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	item, err := handler.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	assert.Len(t, f.carts.items, 1)
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 5, product.Stock)
}

func TestAddItemInsufficientStock(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 1})
	handler := NewAddItemHandler(f.uow)

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 2})
	require.Error(t, err)

	assert.True(t, apperrors.IsInsufficientStock(err))
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 1, product.Stock)
	assert.Empty(t, f.carts.items)
}

func TestAddItemValidation(t *testing.T) {
	f := newCartFixture()
	handler := NewAddItemHandler(f.uow)

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: 10})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: -3})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 99, Quantity: 1})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConcurrentAddsCannotOversell(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 1})
	handler := NewAddItemHandler(f.uow)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), AddItemCommand{UserID: uint(100 + i), ProductID: 1, Quantity: 1})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperrors.IsInsufficientStock(err))
		}
	}
	assert.Equal(t, 1, succeeded)
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 0, product.Stock)
}

func TestRemoveItemRestoresStock(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	remove := NewRemoveItemHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	err = remove.Handle(context.Background(), RemoveItemCommand{UserID: 10, ProductID: 1})
	require.NoError(t, err)

	product, _ := f.products.FindByID(1)
	assert.Equal(t, 5, product.Stock)
	assert.Empty(t, f.carts.items)
}

func TestRemoveItemAbortsWhenProductLockFails(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	remove := NewRemoveItemHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	f.products.lockErr = errors.New("driver: bad connection")
	err = remove.Handle(context.Background(), RemoveItemCommand{UserID: 10, ProductID: 1})
	require.Error(t, err)

	// Nothing committed, so the reserved units stay attached to the line.
	assert.Len(t, f.carts.items, 1)
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 2, product.Stock)
}

func TestRemoveItemSkipsDeletedProduct(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	remove := NewRemoveItemHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, f.products.Delete(1))

	err = remove.Handle(context.Background(), RemoveItemCommand{UserID: 10, ProductID: 1})
	require.NoError(t, err)
	assert.Empty(t, f.carts.items)
}

func TestRemoveItemNotInCart(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	remove := NewRemoveItemHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1})
	require.NoError(t, err)

	err = remove.Handle(context.Background(), RemoveItemCommand{UserID: 10, ProductID: 2})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateItemIncreaseCheckedAgainstStock(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	update := NewUpdateItemHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	// stock is now 3; raising the line to 7 needs 5 more
	_, err = update.Handle(context.Background(), UpdateItemCommand{UserID: 10, ProductID: 1, Quantity: 7})
	assert.True(t, apperrors.IsInsufficientStock(err))

	item, err := update.Handle(context.Background(), UpdateItemCommand{UserID: 10, ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 0, product.Stock)
}

func TestUpdateItemDecreaseReturnsSurplus(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	update := NewUpdateItemHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	item, err := update.Handle(context.Background(), UpdateItemCommand{UserID: 10, ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, item.Quantity)
	product, _ := f.products.FindByID(1)
	assert.Equal(t, 3, product.Stock)
}

func TestUpdateItemValidation(t *testing.T) {
	f := newCartFixture()
	update := NewUpdateItemHandler(f.uow)

	_, err := update.Handle(context.Background(), UpdateItemCommand{UserID: 10, ProductID: 1, Quantity: 0})
	assert.True(t, apperrors.IsValidation(err))
}

func TestClearCartRestoresAllStock(t *testing.T) {
	f := newCartFixture(
		&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5},
		&catalogdomain.Product{ID: 2, Name: "Rug", Stock: 8},
	)
	add := NewAddItemHandler(f.uow)
	clear := NewClearCartHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	_, err = add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 2, Quantity: 4})
	require.NoError(t, err)

	err = clear.Handle(context.Background(), ClearCartCommand{UserID: 10})
	require.NoError(t, err)

	lamp, _ := f.products.FindByID(1)
	rug, _ := f.products.FindByID(2)
	assert.Equal(t, 5, lamp.Stock)
	assert.Equal(t, 8, rug.Stock)
	assert.Empty(t, f.carts.items)
}

func TestClearCartAbortsWhenProductLockFails(t *testing.T) {
	f := newCartFixture(&catalogdomain.Product{ID: 1, Name: "Lamp", Stock: 5})
	add := NewAddItemHandler(f.uow)
	clear := NewClearCartHandler(f.uow)

	_, err := add.Handle(context.Background(), AddItemCommand{UserID: 10, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	f.products.lockErr = errors.New("driver: bad connection")
	err = clear.Handle(context.Background(), ClearCartCommand{UserID: 10})
	require.Error(t, err)
	assert.Len(t, f.carts.items, 1)
}
