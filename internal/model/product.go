package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductType is a named crop or produce kind (دراق، تفاح، خضروات).
type ProductType struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Category string `gorm:"type:varchar(50)" json:"category"`

	Productions []Production `json:"productions,omitempty"`
	Sales       []Sale       `json:"sales,omitempty"`
}

// Production is a harvested-quantity record for one product type.
type Production struct {
	BaseModel
	ProductTypeID uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_type_id" validate:"uuid_required"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`

	Location string    `gorm:"type:varchar(50)" json:"location"` // جبل، سهل
	Quantity float64   `gorm:"default:0" json:"quantity" validate:"gte=0"`
	Unit     string    `gorm:"type:varchar(20);default:'كجم'" json:"unit"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes    string    `gorm:"type:text" json:"notes"`
}

// Sale records a quantity sold at a dual-currency per-unit price.
// Totals are snapshotted at creation (quantity x per-unit price).
type Sale struct {
	BaseModel
	ProductTypeID uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_type_id" validate:"uuid_required"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`

	Quantity     float64   `gorm:"default:0" json:"quantity" validate:"gte=0"`
	Unit         string    `gorm:"type:varchar(20);default:'كجم'" json:"unit"`
	PricePerUnit Money     `gorm:"embedded;embeddedPrefix:price_per_unit_" json:"price_per_unit"`
	Total        Money     `gorm:"embedded;embeddedPrefix:total_" json:"total"`
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes        string    `gorm:"type:text" json:"notes"`
}
