package repository

import (
	"time"

	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(worker *model.Worker) error
	Update(worker *model.Worker) error
	FindAll() ([]model.Worker, error)
	FindByID(id uuid.UUID) (*model.Worker, error)

	// FindByIDTx reads the worker inside the given transaction; a nil tx
	// falls back to the repository's own handle.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Worker, error)

	// TotalHours is the derived sum over the worker's shifts. Pass a tx to
	// read it inside the same transaction as a dependent write.
	TotalHours(tx *gorm.DB, workerID uuid.UUID) (float64, error)

	// DeleteCascade removes the worker with its shifts, attendance records
	// and advance transactions in one transaction.
	DeleteCascade(id uuid.UUID, deletedBy string) error
}

type ShiftRepository interface {
	Create(shift *model.WorkShift) error
	Update(shift *model.WorkShift) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.WorkShift, error)
	FindByWorkerID(workerID uuid.UUID) ([]model.WorkShift, error)
}

type AttendanceRepository interface {
	Create(att *model.Attendance) error
	Update(att *model.Attendance) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Attendance, error)
	FindByDate(date time.Time) ([]model.Attendance, error)
	FindByWorkerID(workerID uuid.UUID) ([]model.Attendance, error)
	ExistsForWorkerOn(workerID uuid.UUID, date time.Time) (bool, error)
}

type workerRepo struct {
	db *gorm.DB
}

func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db}
}

func (r *workerRepo) Create(worker *model.Worker) error {
	return r.db.Create(worker).Error
}

func (r *workerRepo) Update(worker *model.Worker) error {
	return r.db.Save(worker).Error
}

func (r *workerRepo) FindAll() ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepo) FindByID(id uuid.UUID) (*model.Worker, error) {
	return r.FindByIDTx(nil, id)
}

func (r *workerRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Worker, error) {
	if tx == nil {
		tx = r.db
	}
	var worker model.Worker
	if err := tx.First(&worker, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) TotalHours(tx *gorm.DB, workerID uuid.UUID) (float64, error) {
	if tx == nil {
		tx = r.db
	}
	var total float64
	err := tx.Model(&model.WorkShift{}).
		Where("worker_id = ?", workerID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error
	return total, err
}

func (r *workerRepo) DeleteCascade(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("worker_id = ?", id).Delete(&model.WorkShift{}).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", id).Delete(&model.AccountingTransaction{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Worker{}).Where("id = ?", id).Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
	})
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db}
}

func (r *shiftRepo) Create(shift *model.WorkShift) error {
	return r.db.Create(shift).Error
}

func (r *shiftRepo) Update(shift *model.WorkShift) error {
	return r.db.Save(shift).Error
}

func (r *shiftRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.WorkShift{}, "id = ?", id).Error
}

func (r *shiftRepo) FindByID(id uuid.UUID) (*model.WorkShift, error) {
	var shift model.WorkShift
	if err := r.db.Preload("Worker").Preload("ProductType").First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindByWorkerID(workerID uuid.UUID) ([]model.WorkShift, error) {
	var shifts []model.WorkShift
	err := r.db.Preload("ProductType").
		Where("worker_id = ?", workerID).
		Order("date DESC").
		Find(&shifts).Error
	return shifts, err
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db}
}

func (r *attendanceRepo) Create(att *model.Attendance) error {
	return r.db.Create(att).Error
}

func (r *attendanceRepo) Update(att *model.Attendance) error {
	return r.db.Save(att).Error
}

func (r *attendanceRepo) Delete(id uuid.UUID) error {
	// Hard delete: a soft-deleted row would keep occupying the
	// worker+date unique index and block re-recording that day.
	return r.db.Unscoped().Delete(&model.Attendance{}, "id = ?", id).Error
}

func (r *attendanceRepo) FindByID(id uuid.UUID) (*model.Attendance, error) {
	var att model.Attendance
	if err := r.db.Preload("Worker").First(&att, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) FindByDate(date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Preload("Worker").
		Where("date = ?", date).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) FindByWorkerID(workerID uuid.UUID) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Where("worker_id = ?", workerID).Order("date DESC").Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ExistsForWorkerOn(workerID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).
		Where("worker_id = ? AND date = ?", workerID, date).
		Count(&count).Error
	return count > 0, err
}
