package model

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a farm laborer paid by the hour in two currencies.
// Total worked hours are never stored: they are derived from the shift
// history at query time, so shift edits and deletions can never drift
// the ledger.
type Worker struct {
	BaseModel
	Name          string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Phone         string  `gorm:"type:varchar(20)" json:"phone"`
	HourlyRateUSD float64 `gorm:"default:0" json:"hourly_rate_usd" validate:"gte=0"`
	HourlyRateLBP float64 `gorm:"default:0" json:"hourly_rate_lbp" validate:"gte=0"`

	Shifts []WorkShift `json:"shifts,omitempty"`
}

// HourlyRate returns the worker's pay rate as a dual-currency amount.
func (w *Worker) HourlyRate() Money {
	return NewMoney(w.HourlyRateUSD, w.HourlyRateLBP)
}

// Shift types and locations carried over from the paper logbooks.
const (
	ShiftMorning   = "صباحي"
	ShiftAfternoon = "بعد ظهر"

	LocationMountain = "جبل"
	LocationPlain    = "سهل"
)

// WorkShift is a single recorded stint of work for one worker.
type WorkShift struct {
	BaseModel
	WorkerID uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id" validate:"uuid_required"`
	Worker   *Worker   `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`

	ShiftType     string     `gorm:"type:varchar(20);not null" json:"shift_type"` // صباحي، بعد ظهر
	Location      string     `gorm:"type:varchar(50);not null" json:"location"`   // جبل، سهل
	ProductTypeID *uuid.UUID `gorm:"type:uuid" json:"product_type_id,omitempty"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`
	WorkType      string     `gorm:"type:varchar(50)" json:"work_type"` // تنظيف، تقليم، تشحيل
	Hours         float64    `gorm:"not null;default:0" json:"hours" validate:"gte=0"`
	Date          time.Time  `gorm:"type:date;not null;index" json:"date"`
	Notes         string     `gorm:"type:text" json:"notes"`
}

// Attendance statuses
const (
	AttendancePresent = "حاضر"
	AttendanceAbsent  = "غائب"
	AttendanceHalfDay = "نصف يوم"
)

// Attendance is the daily presence record, at most one per worker per day.
type Attendance struct {
	BaseModel
	WorkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_worker_date,unique" json:"worker_id" validate:"uuid_required"`
	Worker   *Worker   `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`

	Date         time.Time `gorm:"type:date;not null;index:idx_attendance_worker_date,unique" json:"date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'حاضر'" json:"status"`
	CheckInTime  string    `gorm:"type:varchar(5)" json:"check_in_time"`  // HH:MM
	CheckOutTime string    `gorm:"type:varchar(5)" json:"check_out_time"` // HH:MM
	HoursWorked  float64   `gorm:"default:0" json:"hours_worked" validate:"gte=0"`
	Notes        string    `gorm:"type:text" json:"notes"`
}

// WorkerAccount is the derived pay summary for one worker.
type WorkerAccount struct {
	WorkerID   uuid.UUID `json:"worker_id"`
	Name       string    `json:"name"`
	TotalHours float64   `json:"total_hours"`
	Earnings   Money     `json:"earnings"`
	Advances   Money     `json:"advances"`
	Balance    Money     `json:"balance"`
}
