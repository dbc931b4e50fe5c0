package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(10, 500000)
	b := NewMoney(2.5, 100000)

	sum := a.Add(b)
	assert.True(t, sum.USD.Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, sum.LBP.Equal(decimal.NewFromInt(600000)))

	diff := a.Sub(b)
	assert.True(t, diff.USD.Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, diff.LBP.Equal(decimal.NewFromInt(400000)))
}

func TestMoneyScale(t *testing.T) {
	rate := NewMoney(5, 450000)
	earned := rate.Scale(40)

	assert.True(t, earned.USD.Equal(decimal.NewFromInt(200)))
	assert.True(t, earned.LBP.Equal(decimal.NewFromInt(18000000)))
}

func TestMoneySubGoesNegative(t *testing.T) {
	// A balance may go below zero when advances exceed earnings.
	balance := NewMoney(100, 0).Sub(NewMoney(150, 0))
	assert.True(t, balance.USD.IsNegative())
}

func TestZeroMoney(t *testing.T) {
	assert.True(t, ZeroMoney().IsZero())
	assert.False(t, NewMoney(0.01, 0).IsZero())
}
