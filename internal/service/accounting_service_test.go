package service

import (
	"errors"
	"testing"
	"time"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRequiresWorker(t *testing.T) {
	db := newTestDB(t)
	accounting := newAccountingService(t, db)

	err := accounting.PostTransaction(&model.AccountingTransaction{
		Type:     model.TxExpense,
		Category: model.CategoryAdvance,
		Amount:   model.NewMoney(50, 0),
	}, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestAdvanceMustBeExpense(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)
	accounting := newAccountingService(t, db)

	worker := &model.Worker{Name: "أحمد"}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	err := accounting.PostTransaction(&model.AccountingTransaction{
		Type:     model.TxIncome,
		Category: model.CategoryAdvance,
		Amount:   model.NewMoney(50, 0),
		WorkerID: &worker.ID,
	}, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestAdvanceUnknownWorker(t *testing.T) {
	db := newTestDB(t)
	accounting := newAccountingService(t, db)

	missing := uuid.New()
	err := accounting.PostTransaction(&model.AccountingTransaction{
		Type:     model.TxExpense,
		Category: model.CategoryAdvance,
		Amount:   model.NewMoney(50, 0),
		WorkerID: &missing,
	}, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestFinancialSummaryPerCurrency(t *testing.T) {
	db := newTestDB(t)
	accounting := newAccountingService(t, db)
	userID := uuid.New()

	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxIncome, Category: "sales", Amount: model.NewMoney(300, 1000000),
	}, userID))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxIncome, Category: "sales", Amount: model.NewMoney(200, 0),
	}, userID))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "fuel", Amount: model.NewMoney(150, 4000000),
	}, userID))

	summary, err := accounting.GetSummary()
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.USD.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalExpense.USD.Equal(decimal.NewFromInt(150)))
	assert.True(t, summary.NetResult.USD.Equal(decimal.NewFromInt(350)))

	// The LBP side nets independently and may carry a different sign.
	assert.True(t, summary.NetResult.LBP.Equal(decimal.NewFromInt(-3000000)))
}

func TestTotalsByCategory(t *testing.T) {
	db := newTestDB(t)
	accounting := newAccountingService(t, db)
	userID := uuid.New()

	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "fuel", Amount: model.NewMoney(40, 0),
	}, userID))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "fuel", Amount: model.NewMoney(60, 0),
	}, userID))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "wages", Amount: model.NewMoney(500, 0),
	}, userID))

	totals, err := accounting.TotalsByCategory(model.TxExpense, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.True(t, totals["fuel"].USD.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals["wages"].USD.Equal(decimal.NewFromInt(500)))
}

func TestTransactionFilterByType(t *testing.T) {
	db := newTestDB(t)
	accounting := newAccountingService(t, db)
	userID := uuid.New()

	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxIncome, Category: "sales", Amount: model.NewMoney(10, 0),
	}, userID))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "fuel", Amount: model.NewMoney(20, 0),
	}, userID))

	incomes, err := accounting.GetTransactions(repository.TransactionFilter{Type: model.TxIncome})
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, model.TxIncome, incomes[0].Type)
}

func TestUpdateTransactionKeepsAdvanceRule(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)
	accounting := newAccountingService(t, db)

	worker := &model.Worker{Name: "فادي"}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	tx := &model.AccountingTransaction{
		Type: model.TxExpense, Category: "fuel", Amount: model.NewMoney(20, 0),
	}
	require.NoError(t, accounting.PostTransaction(tx, uuid.New()))

	// Recategorizing to an advance without a worker is rejected.
	_, err := accounting.UpdateTransaction(tx.ID, &model.AccountingTransaction{
		Type: model.TxExpense, Category: model.CategoryAdvance, Amount: model.NewMoney(20, 0),
	}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// With the worker named it goes through.
	updated, err := accounting.UpdateTransaction(tx.ID, &model.AccountingTransaction{
		Type: model.TxExpense, Category: model.CategoryAdvance, Amount: model.NewMoney(20, 0), WorkerID: &worker.ID,
	}, "tester")
	require.NoError(t, err)
	assert.True(t, updated.IsAdvance())
}
