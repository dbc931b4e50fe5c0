package repository

import (
	"time"

	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows accounting queries. Zero values mean "no filter".
type TransactionFilter struct {
	Type     model.TransactionType
	Category string
	From     time.Time
	To       time.Time
	WorkerID *uuid.UUID
}

// CategoryTotal is one row of the grouped-by-category report.
type CategoryTotal struct {
	Category string      `json:"category"`
	Total    model.Money `json:"total"`
}

type AccountingRepository interface {
	Create(tx *model.AccountingTransaction) error
	Update(tx *model.AccountingTransaction) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.AccountingTransaction, error)
	Find(filter TransactionFilter) ([]model.AccountingTransaction, error)

	// SumByType totals amounts for one transaction type, per currency.
	SumByType(txType model.TransactionType) (model.Money, error)

	// TotalsByCategory groups amounts of one type by category. Every
	// distinct category observed appears exactly once.
	TotalsByCategory(txType model.TransactionType, filter TransactionFilter) (map[string]model.Money, error)

	// AdvancesForWorker sums expense transactions with the advance
	// category for one worker. Pass a tx to read inside an enclosing
	// transaction.
	AdvancesForWorker(tx *gorm.DB, workerID uuid.UUID) (model.Money, error)
}

type accountingRepo struct {
	db *gorm.DB
}

func NewAccountingRepo(db *gorm.DB) AccountingRepository {
	return &accountingRepo{db}
}

func (r *accountingRepo) Create(tx *model.AccountingTransaction) error {
	return r.db.Create(tx).Error
}

func (r *accountingRepo) Update(tx *model.AccountingTransaction) error {
	return r.db.Save(tx).Error
}

func (r *accountingRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.AccountingTransaction{}, "id = ?", id).Error
}

func (r *accountingRepo) FindByID(id uuid.UUID) (*model.AccountingTransaction, error) {
	var record model.AccountingTransaction
	if err := r.db.Preload("Worker").Preload("CreatedByUser").
		First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *accountingRepo) Find(filter TransactionFilter) ([]model.AccountingTransaction, error) {
	var records []model.AccountingTransaction
	err := r.applyFilter(r.db, filter).
		Preload("Worker").Preload("CreatedByUser").
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *accountingRepo) applyFilter(tx *gorm.DB, filter TransactionFilter) *gorm.DB {
	query := tx.Model(&model.AccountingTransaction{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", *filter.WorkerID)
	}
	return query
}

func (r *accountingRepo) SumByType(txType model.TransactionType) (model.Money, error) {
	var row struct {
		USD decimal.Decimal
		LBP decimal.Decimal
	}
	err := r.db.Model(&model.AccountingTransaction{}).
		Where("type = ?", txType).
		Select("COALESCE(SUM(amount_usd), 0) as usd, COALESCE(SUM(amount_lbp), 0) as lbp").
		Scan(&row).Error
	if err != nil {
		return model.ZeroMoney(), err
	}
	return model.Money{USD: row.USD, LBP: row.LBP}, nil
}

func (r *accountingRepo) TotalsByCategory(txType model.TransactionType, filter TransactionFilter) (map[string]model.Money, error) {
	filter.Type = txType
	rows, err := r.applyFilter(r.db, filter).
		Select("category, COALESCE(SUM(amount_usd), 0), COALESCE(SUM(amount_lbp), 0)").
		Group("category").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]model.Money)
	for rows.Next() {
		var category string
		var usd, lbp decimal.Decimal
		if err := rows.Scan(&category, &usd, &lbp); err != nil {
			return nil, err
		}
		totals[category] = model.Money{USD: usd, LBP: lbp}
	}
	return totals, rows.Err()
}

func (r *accountingRepo) AdvancesForWorker(tx *gorm.DB, workerID uuid.UUID) (model.Money, error) {
	if tx == nil {
		tx = r.db
	}
	var row struct {
		USD decimal.Decimal
		LBP decimal.Decimal
	}
	err := tx.Model(&model.AccountingTransaction{}).
		Where("worker_id = ? AND type = ? AND category = ?", workerID, model.TxExpense, model.CategoryAdvance).
		Select("COALESCE(SUM(amount_usd), 0) as usd, COALESCE(SUM(amount_lbp), 0) as lbp").
		Scan(&row).Error
	if err != nil {
		return model.ZeroMoney(), err
	}
	return model.Money{USD: row.USD, LBP: row.LBP}, nil
}
