package service

import (
	"time"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WorkerService interface {
	CreateWorker(req *model.Worker, userID string) error
	UpdateWorker(id uuid.UUID, req *model.Worker, userID string) (*model.Worker, error)
	DeleteWorker(id uuid.UUID, deletedBy string) error
	GetWorkers() ([]model.Worker, error)
	GetWorker(id uuid.UUID) (*model.Worker, error)

	AddShift(req *model.WorkShift, userID string) error
	UpdateShift(id uuid.UUID, req *model.WorkShift, userID string) (*model.WorkShift, error)
	DeleteShift(id uuid.UUID) error
	GetShifts(workerID uuid.UUID) ([]model.WorkShift, error)

	// GetBalance returns the worker's derived pay summary: total hours
	// summed from the shift history, earnings per currency, advances from
	// the accounting log and the resulting balance (never clamped).
	GetBalance(workerID uuid.UUID) (*model.WorkerAccount, error)
	GetAccounts() ([]model.WorkerAccount, error)

	RecordAttendance(req *model.Attendance, userID string) error
	UpdateAttendance(id uuid.UUID, req *model.Attendance, userID string) (*model.Attendance, error)
	DeleteAttendance(id uuid.UUID) error
	GetAttendanceByDate(date time.Time) ([]model.Attendance, error)
}

type workerService struct {
	workerRepo     repository.WorkerRepository
	shiftRepo      repository.ShiftRepository
	attendanceRepo repository.AttendanceRepository
	accountingRepo repository.AccountingRepository
	db             *gorm.DB
	logger         *zap.Logger
}

func NewWorkerService(
	workerRepo repository.WorkerRepository,
	shiftRepo repository.ShiftRepository,
	attendanceRepo repository.AttendanceRepository,
	accountingRepo repository.AccountingRepository,
	db *gorm.DB,
	logger *zap.Logger,
) WorkerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &workerService{
		workerRepo:     workerRepo,
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		accountingRepo: accountingRepo,
		db:             db,
		logger:         logger,
	}
}

func (s *workerService) CreateWorker(req *model.Worker, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.workerRepo.Create(req)
}

func (s *workerService) UpdateWorker(id uuid.UUID, req *model.Worker, userID string) (*model.Worker, error) {
	worker, err := s.workerRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("worker", id)
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	worker.Name = req.Name
	worker.Phone = req.Phone
	worker.HourlyRateUSD = req.HourlyRateUSD
	worker.HourlyRateLBP = req.HourlyRateLBP
	worker.UpdatedBy = userID

	if err := s.workerRepo.Update(worker); err != nil {
		return nil, err
	}
	return worker, nil
}

func (s *workerService) DeleteWorker(id uuid.UUID, deletedBy string) error {
	if _, err := s.workerRepo.FindByID(id); err != nil {
		return apperr.NotFound("worker", id)
	}
	s.logger.Info("deleting worker with all related records", zap.String("worker_id", id.String()))
	return s.workerRepo.DeleteCascade(id, deletedBy)
}

func (s *workerService) GetWorkers() ([]model.Worker, error) {
	return s.workerRepo.FindAll()
}

func (s *workerService) GetWorker(id uuid.UUID) (*model.Worker, error) {
	worker, err := s.workerRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("worker", id)
	}
	return worker, nil
}

func (s *workerService) AddShift(req *model.WorkShift, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.workerRepo.FindByID(req.WorkerID); err != nil {
		return apperr.NotFound("worker", req.WorkerID)
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID

	// Total hours are derived from the shift rows, so the insert is the
	// whole mutation: there is no counter to keep in step.
	return s.shiftRepo.Create(req)
}

func (s *workerService) UpdateShift(id uuid.UUID, req *model.WorkShift, userID string) (*model.WorkShift, error) {
	shift, err := s.shiftRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("shift", id)
	}
	if req.Hours < 0 {
		return nil, apperr.Validation("hours must not be negative")
	}

	shift.ShiftType = req.ShiftType
	shift.Location = req.Location
	shift.ProductTypeID = req.ProductTypeID
	shift.WorkType = req.WorkType
	shift.Hours = req.Hours
	if !req.Date.IsZero() {
		shift.Date = req.Date
	}
	shift.Notes = req.Notes
	shift.UpdatedBy = userID

	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *workerService) DeleteShift(id uuid.UUID) error {
	if _, err := s.shiftRepo.FindByID(id); err != nil {
		return apperr.NotFound("shift", id)
	}
	return s.shiftRepo.Delete(id)
}

func (s *workerService) GetShifts(workerID uuid.UUID) ([]model.WorkShift, error) {
	return s.shiftRepo.FindByWorkerID(workerID)
}

func (s *workerService) GetBalance(workerID uuid.UUID) (*model.WorkerAccount, error) {
	var account *model.WorkerAccount

	// Hours, advances and the balance are read inside one transaction so
	// a concurrent shift or advance cannot split the view.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		worker, err := s.workerRepo.FindByIDTx(tx, workerID)
		if err != nil {
			return apperr.NotFound("worker", workerID)
		}

		hours, err := s.workerRepo.TotalHours(tx, workerID)
		if err != nil {
			return err
		}
		advances, err := s.accountingRepo.AdvancesForWorker(tx, workerID)
		if err != nil {
			return err
		}

		earnings := worker.HourlyRate().Scale(hours)
		account = &model.WorkerAccount{
			WorkerID:   worker.ID,
			Name:       worker.Name,
			TotalHours: hours,
			Earnings:   earnings,
			Advances:   advances,
			Balance:    earnings.Sub(advances),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *workerService) GetAccounts() ([]model.WorkerAccount, error) {
	workers, err := s.workerRepo.FindAll()
	if err != nil {
		return nil, err
	}
	accounts := make([]model.WorkerAccount, 0, len(workers))
	for _, worker := range workers {
		account, err := s.GetBalance(worker.ID)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

func (s *workerService) RecordAttendance(req *model.Attendance, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.workerRepo.FindByID(req.WorkerID); err != nil {
		return apperr.NotFound("worker", req.WorkerID)
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	req.Date = truncateToDay(req.Date)

	// One record per worker per day. A duplicate is rejected, not merged.
	exists, err := s.attendanceRepo.ExistsForWorkerOn(req.WorkerID, req.Date)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Validation("تم تسجيل الحضور بالفعل لهذا العامل في هذا التاريخ")
	}

	if req.Status == "" {
		req.Status = model.AttendancePresent
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.attendanceRepo.Create(req)
}

func (s *workerService) UpdateAttendance(id uuid.UUID, req *model.Attendance, userID string) (*model.Attendance, error) {
	att, err := s.attendanceRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("attendance", id)
	}
	if req.HoursWorked < 0 {
		return nil, apperr.Validation("hours_worked must not be negative")
	}

	att.Status = req.Status
	att.CheckInTime = req.CheckInTime
	att.CheckOutTime = req.CheckOutTime
	att.HoursWorked = req.HoursWorked
	att.Notes = req.Notes
	att.UpdatedBy = userID

	if err := s.attendanceRepo.Update(att); err != nil {
		return nil, err
	}
	return att, nil
}

func (s *workerService) DeleteAttendance(id uuid.UUID) error {
	if _, err := s.attendanceRepo.FindByID(id); err != nil {
		return apperr.NotFound("attendance", id)
	}
	return s.attendanceRepo.Delete(id)
}

func (s *workerService) GetAttendanceByDate(date time.Time) ([]model.Attendance, error) {
	return s.attendanceRepo.FindByDate(truncateToDay(date))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
