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
	"gorm.io/gorm"
)

type StockService interface {
	AddFuel(req *model.FuelLog, userID string) error
	AddMedicine(req *model.Medicine, userID string) error
	AddFertilizer(req *model.Fertilizer, userID string) error

	GetFuelList() ([]model.StockItemView, error)
	GetMedicineList() ([]model.StockItemView, error)
	GetFertilizerList() ([]model.StockItemView, error)

	// RecordConsumption appends a draw-down against one stock item. The
	// target is resolved from (category, targetID), quantity may exceed
	// what remains: the overdraw shows up as a deficit, never an error.
	RecordConsumption(req *ConsumptionRequest, userID string) (*model.Consumption, error)
	GetConsumptions() ([]model.Consumption, error)
	DeleteConsumption(id uuid.UUID, deletedBy string) error

	// RemainingQuantity is initial quantity minus the consumed sum. May be
	// negative.
	RemainingQuantity(category model.StockCategory, targetID uuid.UUID) (float64, model.StockStatus, error)

	// DeleteItem removes a stock item together with its consumption
	// records and linked accounting rows, in one transaction.
	DeleteItem(category model.StockCategory, id uuid.UUID, deletedBy string) error
}

type ConsumptionRequest struct {
	Category model.StockCategory `json:"category" validate:"required"`
	TargetID uuid.UUID           `json:"target_id" validate:"uuid_required"`
	Quantity float64             `json:"quantity_consumed" validate:"gte=0"`
	Unit     string              `json:"unit"`
	Date     time.Time           `json:"date"`
	Notes    string              `json:"notes"`
}

type stockService struct {
	fuelRepo        repository.FuelRepository
	medicineRepo    repository.MedicineRepository
	fertilizerRepo  repository.FertilizerRepository
	consumptionRepo repository.ConsumptionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
	logger          *zap.Logger
}

func NewStockService(
	fuelRepo repository.FuelRepository,
	medicineRepo repository.MedicineRepository,
	fertilizerRepo repository.FertilizerRepository,
	consumptionRepo repository.ConsumptionRepository,
	db *gorm.DB,
	hub *ws.Hub,
	logger *zap.Logger,
) StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &stockService{
		fuelRepo:        fuelRepo,
		medicineRepo:    medicineRepo,
		fertilizerRepo:  fertilizerRepo,
		consumptionRepo: consumptionRepo,
		db:              db,
		wsHub:           hub,
		logger:          logger,
	}
}

func (s *stockService) AddFuel(req *model.FuelLog, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	req.Total = req.PricePerLiter.Scale(req.Liters)
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	return s.fuelRepo.Create(req)
}

func (s *stockService) AddMedicine(req *model.Medicine, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if req.Unit == "" {
		req.Unit = "لتر"
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	return s.medicineRepo.Create(req)
}

func (s *stockService) AddFertilizer(req *model.Fertilizer, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if req.Unit == "" {
		req.Unit = "كجم"
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	return s.fertilizerRepo.Create(req)
}

func (s *stockService) GetFuelList() ([]model.StockItemView, error) {
	logs, err := s.fuelRepo.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]model.StockItemView, len(logs))
	for i, log := range logs {
		consumed, err := s.consumptionRepo.ConsumedTotal(nil, model.StockFuel, log.ID)
		if err != nil {
			return nil, err
		}
		remaining := log.Liters - consumed
		views[i] = model.StockItemView{
			ID:          log.ID,
			Category:    model.StockFuel,
			Label:       log.FuelType,
			InitialQty:  log.Liters,
			ConsumedQty: consumed,
			Remaining:   remaining,
			Unit:        "لتر",
			Status:      model.ClassifyRemaining(remaining),
			TotalValue:  log.PricePerLiter.Scale(log.Liters),
		}
	}
	return views, nil
}

func (s *stockService) GetMedicineList() ([]model.StockItemView, error) {
	medicines, err := s.medicineRepo.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]model.StockItemView, len(medicines))
	for i, m := range medicines {
		consumed, err := s.consumptionRepo.ConsumedTotal(nil, model.StockMedicine, m.ID)
		if err != nil {
			return nil, err
		}
		remaining := m.Quantity - consumed
		views[i] = model.StockItemView{
			ID:          m.ID,
			Category:    model.StockMedicine,
			Label:       m.Name,
			InitialQty:  m.Quantity,
			ConsumedQty: consumed,
			Remaining:   remaining,
			Unit:        m.Unit,
			Status:      model.ClassifyRemaining(remaining),
			TotalValue:  m.TotalValue(),
		}
	}
	return views, nil
}

func (s *stockService) GetFertilizerList() ([]model.StockItemView, error) {
	fertilizers, err := s.fertilizerRepo.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]model.StockItemView, len(fertilizers))
	for i, f := range fertilizers {
		consumed, err := s.consumptionRepo.ConsumedTotal(nil, model.StockFertilizer, f.ID)
		if err != nil {
			return nil, err
		}
		remaining := f.Quantity - consumed
		views[i] = model.StockItemView{
			ID:          f.ID,
			Category:    model.StockFertilizer,
			Label:       f.Name,
			InitialQty:  f.Quantity,
			ConsumedQty: consumed,
			Remaining:   remaining,
			Unit:        f.Unit,
			Status:      model.ClassifyRemaining(remaining),
			TotalValue:  f.TotalValue(),
		}
	}
	return views, nil
}

func (s *stockService) RecordConsumption(req *ConsumptionRequest, userID string) (*model.Consumption, error) {
	if !req.Category.Valid() {
		return nil, apperr.Validation("unknown consumption category %q", req.Category)
	}
	if req.Quantity < 0 {
		return nil, apperr.Validation("quantity_consumed must not be negative")
	}
	if req.TargetID == uuid.Nil {
		return nil, apperr.Validation("target_id is required")
	}

	record := &model.Consumption{
		Category:         req.Category,
		QuantityConsumed: req.Quantity,
		Unit:             req.Unit,
		Date:             req.Date,
		Notes:            req.Notes,
	}
	if record.Date.IsZero() {
		record.Date = time.Now()
	}
	record.CreatedBy = userID
	record.UpdatedBy = userID

	// Resolve the target: the matching foreign key is set here and only
	// here, so the tag and the key cannot disagree.
	var initial float64
	switch req.Category {
	case model.StockFuel:
		fuel, err := s.fuelRepo.FindByID(req.TargetID)
		if err != nil {
			return nil, apperr.NotFound("fuel log", req.TargetID)
		}
		record.FuelID = &fuel.ID
		initial = fuel.Liters
		if record.Unit == "" {
			record.Unit = "لتر"
		}
	case model.StockMedicine:
		medicine, err := s.medicineRepo.FindByID(req.TargetID)
		if err != nil {
			return nil, apperr.NotFound("medicine", req.TargetID)
		}
		record.MedicineID = &medicine.ID
		initial = medicine.Quantity
		if record.Unit == "" {
			record.Unit = medicine.Unit
		}
	case model.StockFertilizer:
		fertilizer, err := s.fertilizerRepo.FindByID(req.TargetID)
		if err != nil {
			return nil, apperr.NotFound("fertilizer", req.TargetID)
		}
		record.FertilizerID = &fertilizer.ID
		initial = fertilizer.Quantity
		if record.Unit == "" {
			record.Unit = fertilizer.Unit
		}
	}

	if err := s.consumptionRepo.Create(record); err != nil {
		return nil, err
	}

	consumed, err := s.consumptionRepo.ConsumedTotal(nil, req.Category, req.TargetID)
	if err != nil {
		// The record is committed; only the deficit check is lost.
		s.logger.Error("remaining-quantity check failed after consumption",
			zap.String("category", string(req.Category)),
			zap.String("target_id", req.TargetID.String()),
			zap.Error(err))
		return record, nil
	}
	remaining := initial - consumed
	status := model.ClassifyRemaining(remaining)

	s.logger.Info("consumption recorded",
		zap.String("category", string(req.Category)),
		zap.String("target_id", req.TargetID.String()),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("remaining", remaining),
		zap.String("status", string(status)))

	// Overdraws are allowed but worth shouting about.
	if status == model.StatusDeficit && s.wsHub != nil {
		go func() {
			payload := map[string]interface{}{
				"type":      "stock_alert",
				"action":    "deficit",
				"category":  req.Category,
				"target_id": req.TargetID.String(),
				"remaining": remaining,
				"message":   fmt.Sprintf("نقص في المخزون (%s): الكمية المتبقية %.2f", req.Category, remaining),
			}
			msg, _ := json.Marshal(payload)
			s.wsHub.Broadcast <- msg
		}()
	}

	return record, nil
}

func (s *stockService) GetConsumptions() ([]model.Consumption, error) {
	return s.consumptionRepo.FindAll()
}

func (s *stockService) DeleteConsumption(id uuid.UUID, deletedBy string) error {
	if _, err := s.consumptionRepo.FindByID(id); err != nil {
		return apperr.NotFound("consumption", id)
	}
	return s.consumptionRepo.Delete(id)
}

func (s *stockService) RemainingQuantity(category model.StockCategory, targetID uuid.UUID) (float64, model.StockStatus, error) {
	if !category.Valid() {
		return 0, "", apperr.Validation("unknown consumption category %q", category)
	}

	var initial float64
	switch category {
	case model.StockFuel:
		fuel, err := s.fuelRepo.FindByID(targetID)
		if err != nil {
			return 0, "", apperr.NotFound("fuel log", targetID)
		}
		initial = fuel.Liters
	case model.StockMedicine:
		medicine, err := s.medicineRepo.FindByID(targetID)
		if err != nil {
			return 0, "", apperr.NotFound("medicine", targetID)
		}
		initial = medicine.Quantity
	case model.StockFertilizer:
		fertilizer, err := s.fertilizerRepo.FindByID(targetID)
		if err != nil {
			return 0, "", apperr.NotFound("fertilizer", targetID)
		}
		initial = fertilizer.Quantity
	}

	consumed, err := s.consumptionRepo.ConsumedTotal(nil, category, targetID)
	if err != nil {
		return 0, "", err
	}
	remaining := initial - consumed
	return remaining, model.ClassifyRemaining(remaining), nil
}

func (s *stockService) DeleteItem(category model.StockCategory, id uuid.UUID, deletedBy string) error {
	if !category.Valid() {
		return apperr.Validation("unknown stock category %q", category)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var itemModel interface{}
		var fkColumn string
		switch category {
		case model.StockFuel:
			itemModel = &model.FuelLog{}
			fkColumn = "fuel_id"
		case model.StockMedicine:
			itemModel = &model.Medicine{}
			fkColumn = "medicine_id"
		case model.StockFertilizer:
			itemModel = &model.Fertilizer{}
			fkColumn = "fertilizer_id"
		}

		result := tx.Where("id = ?", id).Delete(itemModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound(string(category), id)
		}

		if err := tx.Where(fkColumn+" = ?", id).Delete(&model.Consumption{}).Error; err != nil {
			return err
		}
		return tx.Where(fkColumn+" = ?", id).Delete(&model.AccountingTransaction{}).Error
	})
}
