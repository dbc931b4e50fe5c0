package service

import (
	"errors"
	"testing"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordConsumptionAndRemaining(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	fuel := &model.FuelLog{FuelType: "مازوت", Liters: 100, PricePerLiter: model.NewMoney(1, 90000)}
	require.NoError(t, svc.AddFuel(fuel, "tester"))

	_, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: model.StockFuel,
		TargetID: fuel.ID,
		Quantity: 30,
	}, "tester")
	require.NoError(t, err)

	remaining, status, err := svc.RemainingQuantity(model.StockFuel, fuel.ID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, remaining)
	assert.Equal(t, model.StatusAvailable, status)
}

func TestOverConsumptionBecomesDeficit(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	medicine := &model.Medicine{Name: "مضاد حيوي", Quantity: 10, Unit: "علبة", Price: model.NewMoney(5, 450000)}
	require.NoError(t, svc.AddMedicine(medicine, "tester"))

	// Draw more than the stock holds. The record is accepted and the
	// remaining quantity goes negative.
	_, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: model.StockMedicine,
		TargetID: medicine.ID,
		Quantity: 14,
	}, "tester")
	require.NoError(t, err)

	remaining, status, err := svc.RemainingQuantity(model.StockMedicine, medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, -4.0, remaining)
	assert.Equal(t, model.StatusDeficit, status)
}

func TestExactDepletion(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	fertilizer := &model.Fertilizer{Name: "يوريا", Quantity: 50, Unit: "كجم", Price: model.NewMoney(0.5, 45000)}
	require.NoError(t, svc.AddFertilizer(fertilizer, "tester"))

	_, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: model.StockFertilizer,
		TargetID: fertilizer.ID,
		Quantity: 50,
	}, "tester")
	require.NoError(t, err)

	remaining, status, err := svc.RemainingQuantity(model.StockFertilizer, fertilizer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, remaining)
	assert.Equal(t, model.StatusDepleted, status)
}

func TestConsumptionUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	_, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: model.StockFuel,
		TargetID: uuid.New(),
		Quantity: 5,
	}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestConsumptionInvalidCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	_, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: "seeds",
		TargetID: uuid.New(),
		Quantity: 5,
	}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestConsumptionSetsMatchingForeignKey(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	medicine := &model.Medicine{Name: "فيتامين", Quantity: 20, Unit: "علبة", Price: model.NewMoney(2, 180000)}
	require.NoError(t, svc.AddMedicine(medicine, "tester"))

	record, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: model.StockMedicine,
		TargetID: medicine.ID,
		Quantity: 3,
	}, "tester")
	require.NoError(t, err)

	require.NotNil(t, record.MedicineID)
	assert.Equal(t, medicine.ID, *record.MedicineID)
	assert.Nil(t, record.FuelID)
	assert.Nil(t, record.FertilizerID)
	assert.Equal(t, medicine.ID, record.TargetID())
}

func TestStockListTotalValue(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	fuel := &model.FuelLog{FuelType: "بنزين", Liters: 40, PricePerLiter: model.NewMoney(1.5, 135000)}
	require.NoError(t, svc.AddFuel(fuel, "tester"))

	views, err := svc.GetFuelList()
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.True(t, views[0].TotalValue.USD.Equal(decimal.NewFromInt(60)))
	assert.True(t, views[0].TotalValue.LBP.Equal(decimal.NewFromInt(5400000)))
	assert.Equal(t, 40.0, views[0].Remaining)
}

func TestDeleteItemCascadesConsumption(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	fuel := &model.FuelLog{FuelType: "مازوت", Liters: 100, PricePerLiter: model.NewMoney(1, 90000)}
	require.NoError(t, svc.AddFuel(fuel, "tester"))

	_, err := svc.RecordConsumption(&ConsumptionRequest{
		Category: model.StockFuel,
		TargetID: fuel.ID,
		Quantity: 10,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(model.StockFuel, fuel.ID, "tester"))

	consumptions, err := svc.GetConsumptions()
	require.NoError(t, err)
	assert.Empty(t, consumptions)

	_, _, err = svc.RemainingQuantity(model.StockFuel, fuel.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteItemUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newStockService(t, db)

	err := svc.DeleteItem(model.StockFuel, uuid.New(), "tester")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
