package service

import (
	"testing"
	"time"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDailySummary(t *testing.T) {
	db := newTestDB(t)
	accounting := newAccountingService(t, db)
	reports := NewReportService(repository.NewReportRepo(db), repository.NewAccountingRepo(db), nil)

	day := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxIncome, Category: "sales", Amount: model.NewMoney(250, 0), Date: day,
	}, userID))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "fuel", Amount: model.NewMoney(80, 7000000), Date: day,
	}, userID))

	// A transaction outside the day stays out of the summary.
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type: model.TxExpense, Category: "wages", Amount: model.NewMoney(999, 0), Date: day.AddDate(0, 0, 3),
	}, userID))

	report, err := reports.GenerateDailySummary(day, &userID)
	require.NoError(t, err)

	assert.Equal(t, model.ReportAccounting, report.ReportType)
	assert.Contains(t, report.Title, "2026-08-25")
	assert.Contains(t, report.Content, "sales")
	assert.Contains(t, report.Content, "fuel")
	assert.NotContains(t, report.Content, "wages")

	stored, err := reports.GetReports()
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
