package service

import (
	"testing"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Worker{}, &model.WorkShift{}, &model.Attendance{},
		&model.ProductType{}, &model.Production{}, &model.Sale{},
		&model.FuelLog{}, &model.Medicine{}, &model.Fertilizer{}, &model.Consumption{},
		&model.AccountingTransaction{}, &model.Report{},
	))
	return db
}

func newStockService(t *testing.T, db *gorm.DB) StockService {
	t.Helper()
	return NewStockService(
		repository.NewFuelRepo(db),
		repository.NewMedicineRepo(db),
		repository.NewFertilizerRepo(db),
		repository.NewConsumptionRepo(db),
		db, nil, nil,
	)
}

func newWorkerService(t *testing.T, db *gorm.DB) WorkerService {
	t.Helper()
	return NewWorkerService(
		repository.NewWorkerRepo(db),
		repository.NewShiftRepo(db),
		repository.NewAttendanceRepo(db),
		repository.NewAccountingRepo(db),
		db, nil,
	)
}

func newAccountingService(t *testing.T, db *gorm.DB) AccountingService {
	t.Helper()
	return NewAccountingService(
		repository.NewAccountingRepo(db),
		repository.NewWorkerRepo(db),
		nil, nil,
	)
}
