package repository

import (
	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelRepository interface {
	Create(fuel *model.FuelLog) error
	FindAll() ([]model.FuelLog, error)
	FindByID(id uuid.UUID) (*model.FuelLog, error)
}

type MedicineRepository interface {
	Create(medicine *model.Medicine) error
	FindAll() ([]model.Medicine, error)
	FindByID(id uuid.UUID) (*model.Medicine, error)
}

type FertilizerRepository interface {
	Create(fertilizer *model.Fertilizer) error
	FindAll() ([]model.Fertilizer, error)
	FindByID(id uuid.UUID) (*model.Fertilizer, error)
}

type ConsumptionRepository interface {
	Create(c *model.Consumption) error
	FindAll() ([]model.Consumption, error)
	FindByID(id uuid.UUID) (*model.Consumption, error)
	Delete(id uuid.UUID) error

	// ConsumedTotal sums recorded consumption against one stock item.
	// Pass a tx to read inside an enclosing transaction.
	ConsumedTotal(tx *gorm.DB, category model.StockCategory, targetID uuid.UUID) (float64, error)
}

type fuelRepo struct {
	db *gorm.DB
}

func NewFuelRepo(db *gorm.DB) FuelRepository {
	return &fuelRepo{db}
}

func (r *fuelRepo) Create(fuel *model.FuelLog) error {
	return r.db.Create(fuel).Error
}

func (r *fuelRepo) FindAll() ([]model.FuelLog, error) {
	var logs []model.FuelLog
	err := r.db.Order("date DESC").Find(&logs).Error
	return logs, err
}

func (r *fuelRepo) FindByID(id uuid.UUID) (*model.FuelLog, error) {
	var fuel model.FuelLog
	if err := r.db.First(&fuel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fuel, nil
}

type medicineRepo struct {
	db *gorm.DB
}

func NewMedicineRepo(db *gorm.DB) MedicineRepository {
	return &medicineRepo{db}
}

func (r *medicineRepo) Create(medicine *model.Medicine) error {
	return r.db.Create(medicine).Error
}

func (r *medicineRepo) FindAll() ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.Order("date DESC").Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) FindByID(id uuid.UUID) (*model.Medicine, error) {
	var medicine model.Medicine
	if err := r.db.First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

type fertilizerRepo struct {
	db *gorm.DB
}

func NewFertilizerRepo(db *gorm.DB) FertilizerRepository {
	return &fertilizerRepo{db}
}

func (r *fertilizerRepo) Create(fertilizer *model.Fertilizer) error {
	return r.db.Create(fertilizer).Error
}

func (r *fertilizerRepo) FindAll() ([]model.Fertilizer, error) {
	var fertilizers []model.Fertilizer
	err := r.db.Order("date DESC").Find(&fertilizers).Error
	return fertilizers, err
}

func (r *fertilizerRepo) FindByID(id uuid.UUID) (*model.Fertilizer, error) {
	var fertilizer model.Fertilizer
	if err := r.db.First(&fertilizer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fertilizer, nil
}

type consumptionRepo struct {
	db *gorm.DB
}

func NewConsumptionRepo(db *gorm.DB) ConsumptionRepository {
	return &consumptionRepo{db}
}

func (r *consumptionRepo) Create(c *model.Consumption) error {
	return r.db.Create(c).Error
}

func (r *consumptionRepo) FindAll() ([]model.Consumption, error) {
	var records []model.Consumption
	err := r.db.Preload("Fuel").Preload("Medicine").Preload("Fertilizer").
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *consumptionRepo) FindByID(id uuid.UUID) (*model.Consumption, error) {
	var c model.Consumption
	if err := r.db.Preload("Fuel").Preload("Medicine").Preload("Fertilizer").
		First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consumptionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Consumption{}, "id = ?", id).Error
}

func (r *consumptionRepo) ConsumedTotal(tx *gorm.DB, category model.StockCategory, targetID uuid.UUID) (float64, error) {
	if tx == nil {
		tx = r.db
	}
	var total float64
	err := tx.Model(&model.Consumption{}).
		Where("category = ? AND "+categoryColumn(category)+" = ?", category, targetID).
		Select("COALESCE(SUM(quantity_consumed), 0)").
		Scan(&total).Error
	return total, err
}

// categoryColumn maps a stock category to its foreign key column.
func categoryColumn(category model.StockCategory) string {
	switch category {
	case model.StockFuel:
		return "fuel_id"
	case model.StockMedicine:
		return "medicine_id"
	default:
		return "fertilizer_id"
	}
}
