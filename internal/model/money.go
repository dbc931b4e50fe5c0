package model

import "github.com/shopspring/decimal"

// Money is a dual-currency amount. USD and LBP are tracked independently
// and are never converted into each other.
type Money struct {
	USD decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"usd"`
	LBP decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"lbp"`
}

func NewMoney(usd, lbp float64) Money {
	return Money{
		USD: decimal.NewFromFloat(usd),
		LBP: decimal.NewFromFloat(lbp),
	}
}

func ZeroMoney() Money {
	return Money{USD: decimal.Zero, LBP: decimal.Zero}
}

func (m Money) Add(other Money) Money {
	return Money{
		USD: m.USD.Add(other.USD),
		LBP: m.LBP.Add(other.LBP),
	}
}

func (m Money) Sub(other Money) Money {
	return Money{
		USD: m.USD.Sub(other.USD),
		LBP: m.LBP.Sub(other.LBP),
	}
}

// Scale multiplies both currencies by the same factor (e.g. hours, quantity).
func (m Money) Scale(factor float64) Money {
	f := decimal.NewFromFloat(factor)
	return Money{
		USD: m.USD.Mul(f),
		LBP: m.LBP.Mul(f),
	}
}

func (m Money) IsZero() bool {
	return m.USD.IsZero() && m.LBP.IsZero()
}
