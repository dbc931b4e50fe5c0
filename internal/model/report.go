package model

import "github.com/google/uuid"

// Report types
const (
	ReportWorkers    = "workers"
	ReportProduction = "production"
	ReportSales      = "sales"
	ReportAccounting = "accounting"
)

// Report is a stored generated report.
type Report struct {
	BaseModel
	Title      string     `gorm:"type:varchar(200);not null" json:"title" validate:"required"`
	ReportType string     `gorm:"type:varchar(50);not null" json:"report_type"`
	Content    string     `gorm:"type:text" json:"content"`
	GeneratedBy *uuid.UUID `gorm:"type:uuid" json:"generated_by,omitempty"`
	User       *User      `gorm:"foreignKey:GeneratedBy" json:"user,omitempty"`
}
