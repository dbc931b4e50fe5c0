package repository

import (
	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *model.Report) error
	FindAll() ([]model.Report, error)
	FindByID(id uuid.UUID) (*model.Report, error)
	Delete(id uuid.UUID) error
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepo) FindAll() ([]model.Report, error) {
	var reports []model.Report
	err := r.db.Preload("User").Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepo) FindByID(id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := r.db.Preload("User").First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Report{}, "id = ?", id).Error
}
