package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/internal/ws"
	"go-farm-ledger/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountingService interface {
	// PostTransaction appends an income/expense entry. An advance must be
	// an expense and must name the worker it is paid to.
	PostTransaction(req *model.AccountingTransaction, userID uuid.UUID) error
	UpdateTransaction(id uuid.UUID, req *model.AccountingTransaction, userID string) (*model.AccountingTransaction, error)
	DeleteTransaction(id uuid.UUID) error
	GetTransaction(id uuid.UUID) (*model.AccountingTransaction, error)
	GetTransactions(filter repository.TransactionFilter) ([]model.AccountingTransaction, error)

	// GetSummary returns the organization-wide income/expense totals and
	// net result, independently per currency.
	GetSummary() (*model.FinancialSummary, error)

	// TotalsByCategory groups one type's amounts by category over an
	// optional date range.
	TotalsByCategory(txType model.TransactionType, from, to time.Time) (map[string]model.Money, error)
}

type accountingService struct {
	accountingRepo repository.AccountingRepository
	workerRepo     repository.WorkerRepository
	wsHub          *ws.Hub
	logger         *zap.Logger
}

func NewAccountingService(
	accountingRepo repository.AccountingRepository,
	workerRepo repository.WorkerRepository,
	hub *ws.Hub,
	logger *zap.Logger,
) AccountingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountingService{
		accountingRepo: accountingRepo,
		workerRepo:     workerRepo,
		wsHub:          hub,
		logger:         logger,
	}
}

// validateAdvance enforces the one category with special meaning: an
// advance is always an expense against a specific worker.
func (s *accountingService) validateAdvance(tx *model.AccountingTransaction) error {
	if tx.Category != model.CategoryAdvance {
		return nil
	}
	if tx.Type != model.TxExpense {
		return apperr.Validation("an advance must be an expense transaction")
	}
	if tx.WorkerID == nil {
		return apperr.Validation("يجب اختيار العامل عند إضافة سلفة: worker_id is required for advances")
	}
	if _, err := s.workerRepo.FindByID(*tx.WorkerID); err != nil {
		return apperr.NotFound("worker", *tx.WorkerID)
	}
	return nil
}

func (s *accountingService) PostTransaction(req *model.AccountingTransaction, userID uuid.UUID) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if err := s.validateAdvance(req); err != nil {
		return err
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	req.CreatedByUserID = &userID
	req.CreatedBy = userID.String()
	req.UpdatedBy = userID.String()

	if err := s.accountingRepo.Create(req); err != nil {
		return err
	}

	s.logger.Info("transaction posted",
		zap.String("type", string(req.Type)),
		zap.String("category", req.Category),
		zap.String("amount_usd", req.Amount.USD.String()),
		zap.String("amount_lbp", req.Amount.LBP.String()))

	if s.wsHub != nil {
		go func() {
			payload := map[string]interface{}{
				"type":     "accounting_update",
				"action":   "transaction_posted",
				"tx_type":  req.Type,
				"category": req.Category,
				"amount":   req.Amount,
				"message":  fmt.Sprintf("معاملة %s جديدة: %s", req.Type, req.Category),
			}
			msg, _ := json.Marshal(payload)
			s.wsHub.Broadcast <- msg
		}()
	}

	return nil
}

func (s *accountingService) UpdateTransaction(id uuid.UUID, req *model.AccountingTransaction, userID string) (*model.AccountingTransaction, error) {
	record, err := s.accountingRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("transaction", id)
	}

	record.Type = req.Type
	record.Category = req.Category
	record.Amount = req.Amount
	record.Description = req.Description
	record.Notes = req.Notes
	record.WorkerID = req.WorkerID
	if !req.Date.IsZero() {
		record.Date = req.Date
	}
	record.UpdatedBy = userID

	if err := s.validateAdvance(record); err != nil {
		return nil, err
	}
	if err := s.accountingRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *accountingService) DeleteTransaction(id uuid.UUID) error {
	if _, err := s.accountingRepo.FindByID(id); err != nil {
		return apperr.NotFound("transaction", id)
	}
	return s.accountingRepo.Delete(id)
}

func (s *accountingService) GetTransaction(id uuid.UUID) (*model.AccountingTransaction, error) {
	record, err := s.accountingRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("transaction", id)
	}
	return record, nil
}

func (s *accountingService) GetTransactions(filter repository.TransactionFilter) ([]model.AccountingTransaction, error) {
	return s.accountingRepo.Find(filter)
}

func (s *accountingService) GetSummary() (*model.FinancialSummary, error) {
	income, err := s.accountingRepo.SumByType(model.TxIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.accountingRepo.SumByType(model.TxExpense)
	if err != nil {
		return nil, err
	}
	return &model.FinancialSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		NetResult:    income.Sub(expense),
	}, nil
}

func (s *accountingService) TotalsByCategory(txType model.TransactionType, from, to time.Time) (map[string]model.Money, error) {
	if txType != model.TxIncome && txType != model.TxExpense {
		return nil, apperr.Validation("unknown transaction type %q", txType)
	}
	return s.accountingRepo.TotalsByCategory(txType, repository.TransactionFilter{From: from, To: to})
}
