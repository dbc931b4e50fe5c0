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

func TestWorkerBalanceDerivedFromShifts(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)
	accounting := newAccountingService(t, db)

	worker := &model.Worker{Name: "أحمد", HourlyRateUSD: 5, HourlyRateLBP: 450000}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	// 40 hours over two shifts.
	for _, hours := range []float64{25, 15} {
		require.NoError(t, workers.AddShift(&model.WorkShift{
			WorkerID:  worker.ID,
			ShiftType: model.ShiftMorning,
			Location:  model.LocationMountain,
			Hours:     hours,
			Date:      time.Now(),
		}, "tester"))
	}

	// A $100 advance against wages.
	userID := uuid.New()
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type:     model.TxExpense,
		Category: model.CategoryAdvance,
		Amount:   model.NewMoney(100, 0),
		WorkerID: &worker.ID,
	}, userID))

	account, err := workers.GetBalance(worker.ID)
	require.NoError(t, err)

	assert.Equal(t, 40.0, account.TotalHours)
	assert.True(t, account.Earnings.USD.Equal(decimal.NewFromInt(200)))
	assert.True(t, account.Advances.USD.Equal(decimal.NewFromInt(100)))
	assert.True(t, account.Balance.USD.Equal(decimal.NewFromInt(100)))
	assert.True(t, account.Earnings.LBP.Equal(decimal.NewFromInt(18000000)))
	assert.True(t, account.Balance.LBP.Equal(decimal.NewFromInt(18000000)))
}

func TestWorkerBalanceNoShifts(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)

	worker := &model.Worker{Name: "سامر", HourlyRateUSD: 3}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	account, err := workers.GetBalance(worker.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, account.TotalHours)
	assert.True(t, account.Balance.IsZero())
}

func TestDeletingShiftShrinksHours(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)

	worker := &model.Worker{Name: "خالد", HourlyRateUSD: 4}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	shift := &model.WorkShift{WorkerID: worker.ID, Hours: 8, Date: time.Now()}
	require.NoError(t, workers.AddShift(shift, "tester"))
	require.NoError(t, workers.AddShift(&model.WorkShift{WorkerID: worker.ID, Hours: 6, Date: time.Now()}, "tester"))

	require.NoError(t, workers.DeleteShift(shift.ID))

	account, err := workers.GetBalance(worker.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, account.TotalHours)
}

func TestAddShiftUnknownWorker(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)

	err := workers.AddShift(&model.WorkShift{WorkerID: uuid.New(), Hours: 8}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAttendanceOncePerDay(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)

	worker := &model.Worker{Name: "وليد"}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	day := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	require.NoError(t, workers.RecordAttendance(&model.Attendance{
		WorkerID: worker.ID,
		Date:     day,
		Status:   model.AttendancePresent,
	}, "tester"))

	// Same calendar day at a different time is still a duplicate.
	err := workers.RecordAttendance(&model.Attendance{
		WorkerID: worker.ID,
		Date:     day.Add(3 * time.Hour),
		Status:   model.AttendanceAbsent,
	}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// The next day is fine.
	require.NoError(t, workers.RecordAttendance(&model.Attendance{
		WorkerID: worker.ID,
		Date:     day.AddDate(0, 0, 1),
		Status:   model.AttendancePresent,
	}, "tester"))
}

func TestAttendanceReRecordAfterDelete(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)

	worker := &model.Worker{Name: "سمير"}
	require.NoError(t, workers.CreateWorker(worker, "tester"))

	day := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	att := &model.Attendance{WorkerID: worker.ID, Date: day, Status: model.AttendanceAbsent}
	require.NoError(t, workers.RecordAttendance(att, "tester"))
	require.NoError(t, workers.DeleteAttendance(att.ID))

	// Correcting a wrong entry: deleting frees the worker+day slot.
	require.NoError(t, workers.RecordAttendance(&model.Attendance{
		WorkerID: worker.ID,
		Date:     day,
		Status:   model.AttendancePresent,
	}, "tester"))

	records, err := workers.GetAttendanceByDate(day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AttendancePresent, records[0].Status)
}

func TestDeleteWorkerCascades(t *testing.T) {
	db := newTestDB(t)
	workers := newWorkerService(t, db)
	accounting := newAccountingService(t, db)

	worker := &model.Worker{Name: "فادي", HourlyRateUSD: 2}
	require.NoError(t, workers.CreateWorker(worker, "tester"))
	require.NoError(t, workers.AddShift(&model.WorkShift{WorkerID: worker.ID, Hours: 5, Date: time.Now()}, "tester"))
	require.NoError(t, workers.RecordAttendance(&model.Attendance{WorkerID: worker.ID, Date: time.Now()}, "tester"))
	require.NoError(t, accounting.PostTransaction(&model.AccountingTransaction{
		Type:     model.TxExpense,
		Category: model.CategoryAdvance,
		Amount:   model.NewMoney(10, 0),
		WorkerID: &worker.ID,
	}, uuid.New()))

	require.NoError(t, workers.DeleteWorker(worker.ID, "tester"))

	_, err := workers.GetWorker(worker.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	shifts, err := workers.GetShifts(worker.ID)
	require.NoError(t, err)
	assert.Empty(t, shifts)

	transactions, err := accounting.GetTransactions(repository.TransactionFilter{WorkerID: &worker.ID})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}
