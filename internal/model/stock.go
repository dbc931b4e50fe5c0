package model

import (
	"time"

	"github.com/google/uuid"
)

// StockCategory discriminates the three consumable stores.
type StockCategory string

const (
	StockFuel       StockCategory = "fuel"
	StockMedicine   StockCategory = "medicine"
	StockFertilizer StockCategory = "fertilizer"
)

// Valid reports whether the category is one of the three known tags.
func (c StockCategory) Valid() bool {
	switch c {
	case StockFuel, StockMedicine, StockFertilizer:
		return true
	}
	return false
}

// StockStatus classifies a remaining quantity. Exact zero and negative
// are distinct states.
type StockStatus string

const (
	StatusAvailable StockStatus = "available"
	StatusDepleted  StockStatus = "depleted"
	StatusDeficit   StockStatus = "deficit"
)

// ClassifyRemaining maps a remaining quantity to its stock status.
func ClassifyRemaining(remaining float64) StockStatus {
	switch {
	case remaining > 0:
		return StatusAvailable
	case remaining == 0:
		return StatusDepleted
	default:
		return StatusDeficit
	}
}

// FuelLog is a fuel purchase (مازوت، بنزين). Liters is the initial
// quantity; what remains is derived from consumption records.
type FuelLog struct {
	BaseModel
	FuelType      string    `gorm:"type:varchar(50);not null" json:"fuel_type" validate:"required"`
	Liters        float64   `gorm:"not null" json:"liters" validate:"gte=0"`
	PricePerLiter Money     `gorm:"embedded;embeddedPrefix:price_per_liter_" json:"price_per_liter"`
	Total         Money     `gorm:"embedded;embeddedPrefix:total_" json:"total"`
	Date          time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes         string    `gorm:"type:text" json:"notes"`
}

// Medicine is a pesticide or medicine stock item.
type Medicine struct {
	BaseModel
	Name     string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Quantity float64   `gorm:"default:0" json:"quantity" validate:"gte=0"`
	Unit     string    `gorm:"type:varchar(20);default:'لتر'" json:"unit"`
	Price    Money     `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes    string    `gorm:"type:text" json:"notes"`
}

// TotalValue is initial quantity x unit price, per currency.
func (m *Medicine) TotalValue() Money {
	return m.Price.Scale(m.Quantity)
}

// Fertilizer is a fertilizer stock item.
type Fertilizer struct {
	BaseModel
	Name     string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Quantity float64   `gorm:"default:0" json:"quantity" validate:"gte=0"`
	Unit     string    `gorm:"type:varchar(20);default:'كجم'" json:"unit"`
	Price    Money     `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes    string    `gorm:"type:text" json:"notes"`
}

func (f *Fertilizer) TotalValue() Money {
	return f.Price.Scale(f.Quantity)
}

// Consumption is a partial draw-down against exactly one stock item.
// The category tag and the populated foreign key always agree because
// the service resolves the target from (category, target id); callers
// cannot construct a mismatched row through the API.
type Consumption struct {
	BaseModel
	Category StockCategory `gorm:"type:varchar(20);not null;index" json:"category"`

	FuelID       *uuid.UUID `gorm:"type:uuid;index" json:"fuel_id,omitempty"`
	MedicineID   *uuid.UUID `gorm:"type:uuid;index" json:"medicine_id,omitempty"`
	FertilizerID *uuid.UUID `gorm:"type:uuid;index" json:"fertilizer_id,omitempty"`

	Fuel       *FuelLog    `gorm:"foreignKey:FuelID" json:"fuel,omitempty"`
	Medicine   *Medicine   `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Fertilizer *Fertilizer `gorm:"foreignKey:FertilizerID" json:"fertilizer,omitempty"`

	QuantityConsumed float64   `gorm:"not null;default:0" json:"quantity_consumed" validate:"gte=0"`
	Unit             string    `gorm:"type:varchar(20)" json:"unit"`
	Date             time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes            string    `gorm:"type:text" json:"notes"`
}

// TargetID returns the id of the consumed stock item.
func (c *Consumption) TargetID() uuid.UUID {
	switch c.Category {
	case StockFuel:
		if c.FuelID != nil {
			return *c.FuelID
		}
	case StockMedicine:
		if c.MedicineID != nil {
			return *c.MedicineID
		}
	case StockFertilizer:
		if c.FertilizerID != nil {
			return *c.FertilizerID
		}
	}
	return uuid.Nil
}

// StockItemView is the read-side projection of one stock item with its
// derived quantities.
type StockItemView struct {
	ID          uuid.UUID     `json:"id"`
	Category    StockCategory `json:"category"`
	Label       string        `json:"label"`
	InitialQty  float64       `json:"initial_quantity"`
	ConsumedQty float64       `json:"consumed_quantity"`
	Remaining   float64       `json:"remaining_quantity"`
	Unit        string        `json:"unit"`
	Status      StockStatus   `json:"status"`
	TotalValue  Money         `json:"total_value"`
}
