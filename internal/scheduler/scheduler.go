package scheduler

import (
	"time"

	"go-farm-ledger/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reportSvc service.ReportService
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(reportSvc service.ReportService, location *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		reportSvc: reportSvc,
		logger:    logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	// Daily accounting summary at 23:55.
	_, err := s.cron.AddFunc("55 23 * * *", s.storeDailySummary)
	if err != nil {
		s.logger.Error("failed to schedule daily summary", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) storeDailySummary() {
	s.logger.Info("generating daily accounting summary")

	if _, err := s.reportSvc.GenerateDailySummary(time.Now(), nil); err != nil {
		s.logger.Error("failed to generate daily summary", zap.Error(err))
		return
	}
	s.logger.Info("daily summary stored")
}
