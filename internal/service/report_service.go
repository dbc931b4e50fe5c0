package service

import (
	"fmt"
	"strings"
	"time"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	GetReports() ([]model.Report, error)
	GetReport(id uuid.UUID) (*model.Report, error)
	DeleteReport(id uuid.UUID) error

	// GenerateDailySummary stores an accounting summary report for the
	// given day. Run by the scheduler at end of day, or on demand.
	GenerateDailySummary(day time.Time, generatedBy *uuid.UUID) (*model.Report, error)
}

type reportService struct {
	reportRepo     repository.ReportRepository
	accountingRepo repository.AccountingRepository
	logger         *zap.Logger
}

func NewReportService(reportRepo repository.ReportRepository, accountingRepo repository.AccountingRepository, logger *zap.Logger) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{
		reportRepo:     reportRepo,
		accountingRepo: accountingRepo,
		logger:         logger,
	}
}

func (s *reportService) GetReports() ([]model.Report, error) {
	return s.reportRepo.FindAll()
}

func (s *reportService) GetReport(id uuid.UUID) (*model.Report, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("report", id)
	}
	return report, nil
}

func (s *reportService) DeleteReport(id uuid.UUID) error {
	if _, err := s.reportRepo.FindByID(id); err != nil {
		return apperr.NotFound("report", id)
	}
	return s.reportRepo.Delete(id)
}

func (s *reportService) GenerateDailySummary(day time.Time, generatedBy *uuid.UUID) (*model.Report, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Second)

	var b strings.Builder
	fmt.Fprintf(&b, "التقرير المحاسبي اليومي - %s\n\n", from.Format("2006-01-02"))

	for _, txType := range []model.TransactionType{model.TxIncome, model.TxExpense} {
		totals, err := s.accountingRepo.TotalsByCategory(txType, repository.TransactionFilter{From: from, To: to})
		if err != nil {
			return nil, err
		}
		label := "الإيرادات"
		if txType == model.TxExpense {
			label = "المصروفات"
		}
		fmt.Fprintf(&b, "%s:\n", label)
		if len(totals) == 0 {
			b.WriteString("  لا توجد معاملات\n")
		}
		for category, amount := range totals {
			fmt.Fprintf(&b, "  %s: %s USD / %s LBP\n", category, amount.USD.StringFixed(2), amount.LBP.StringFixed(2))
		}
		b.WriteString("\n")
	}

	report := &model.Report{
		Title:       fmt.Sprintf("ملخص يومي %s", from.Format("2006-01-02")),
		ReportType:  model.ReportAccounting,
		Content:     b.String(),
		GeneratedBy: generatedBy,
	}
	report.CreatedBy = "system"
	report.UpdatedBy = "system"
	if generatedBy != nil {
		report.CreatedBy = generatedBy.String()
		report.UpdatedBy = generatedBy.String()
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}
	s.logger.Info("daily accounting summary stored", zap.String("day", from.Format("2006-01-02")))
	return report, nil
}
