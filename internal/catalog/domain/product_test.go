package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStockLevel(t *testing.T) {
	p := &Product{Stock: 10, StockThreshold: 10}
	assert.Equal(t, StockLevelLow, p.CheckStockLevel())

	p.Stock = 11
	assert.Equal(t, StockLevelInStock, p.CheckStockLevel())

	p.Stock = 0
	assert.Equal(t, StockLevelLow, p.CheckStockLevel())
}
