package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyRemaining(t *testing.T) {
	tests := []struct {
		remaining float64
		want      StockStatus
	}{
		{100, StatusAvailable},
		{0.5, StatusAvailable},
		{0, StatusDepleted},
		{-0.5, StatusDeficit},
		{-100, StatusDeficit},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRemaining(tt.remaining), "remaining=%v", tt.remaining)
	}
}

func TestStockCategoryValid(t *testing.T) {
	assert.True(t, StockFuel.Valid())
	assert.True(t, StockMedicine.Valid())
	assert.True(t, StockFertilizer.Valid())
	assert.False(t, StockCategory("seeds").Valid())
	assert.False(t, StockCategory("").Valid())
}

func TestMedicineTotalValue(t *testing.T) {
	m := Medicine{Quantity: 4, Price: NewMoney(12.5, 1000000)}
	total := m.TotalValue()
	assert.True(t, total.USD.Equal(decimal.NewFromInt(50)))
	assert.True(t, total.LBP.Equal(decimal.NewFromInt(4000000)))
}
