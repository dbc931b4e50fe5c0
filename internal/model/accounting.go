package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxIncome  TransactionType = "income"
	TxExpense TransactionType = "expense"
)

// CategoryAdvance marks an expense paid to a worker ahead of wages. It is
// the one category with special meaning: it must be an expense and must
// reference a worker, and it is deducted from that worker's balance.
const CategoryAdvance = "advance"

// AccountingTransaction is a freeform income/expense entry, optionally
// linked to the department record it concerns.
type AccountingTransaction struct {
	BaseModel
	Type     TransactionType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,oneof=income expense"`
	Category string          `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`
	Amount   Money           `gorm:"embedded;embeddedPrefix:amount_" json:"amount"`

	// Department links, all optional
	WorkerID      *uuid.UUID `gorm:"type:uuid;index" json:"worker_id,omitempty"`
	ProductionID  *uuid.UUID `gorm:"type:uuid" json:"production_id,omitempty"`
	SaleID        *uuid.UUID `gorm:"type:uuid" json:"sale_id,omitempty"`
	FuelID        *uuid.UUID `gorm:"type:uuid;index" json:"fuel_id,omitempty"`
	MedicineID    *uuid.UUID `gorm:"type:uuid;index" json:"medicine_id,omitempty"`
	FertilizerID  *uuid.UUID `gorm:"type:uuid;index" json:"fertilizer_id,omitempty"`
	ConsumptionID *uuid.UUID `gorm:"type:uuid" json:"consumption_id,omitempty"`

	Worker *Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`

	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes       string    `gorm:"type:text" json:"notes"`

	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
}

// IsAdvance reports whether the transaction is a worker advance.
func (t *AccountingTransaction) IsAdvance() bool {
	return t.Type == TxExpense && t.Category == CategoryAdvance
}

// FinancialSummary holds the organization-wide totals per currency.
type FinancialSummary struct {
	TotalIncome  Money `json:"total_income"`
	TotalExpense Money `json:"total_expense"`
	NetResult    Money `json:"net_result"`
}
