package service

import (
	"time"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
)

// DashboardStats is the overview computed on read; nothing is cached.
type DashboardStats struct {
	WorkerCount      int64                  `json:"worker_count"`
	DeficitItemCount int                    `json:"deficit_item_count"`
	MonthIncome      model.Money            `json:"month_income"`
	MonthExpense     model.Money            `json:"month_expense"`
	Summary          model.FinancialSummary `json:"summary"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

type dashboardService struct {
	workerRepo     repository.WorkerRepository
	accountingRepo repository.AccountingRepository
	stockService   StockService
}

func NewDashboardService(workerRepo repository.WorkerRepository, accountingRepo repository.AccountingRepository, stockService StockService) DashboardService {
	return &dashboardService{
		workerRepo:     workerRepo,
		accountingRepo: accountingRepo,
		stockService:   stockService,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	workers, err := s.workerRepo.FindAll()
	if err != nil {
		return nil, err
	}

	deficits := 0
	for _, fetch := range []func() ([]model.StockItemView, error){
		s.stockService.GetFuelList,
		s.stockService.GetMedicineList,
		s.stockService.GetFertilizerList,
	} {
		items, err := fetch()
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Status == model.StatusDeficit {
				deficits++
			}
		}
	}

	income, err := s.accountingRepo.SumByType(model.TxIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.accountingRepo.SumByType(model.TxExpense)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthIncome, err := sumRange(s.accountingRepo, model.TxIncome, monthStart, now)
	if err != nil {
		return nil, err
	}
	monthExpense, err := sumRange(s.accountingRepo, model.TxExpense, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		WorkerCount:      int64(len(workers)),
		DeficitItemCount: deficits,
		MonthIncome:      monthIncome,
		MonthExpense:     monthExpense,
		Summary: model.FinancialSummary{
			TotalIncome:  income,
			TotalExpense: expense,
			NetResult:    income.Sub(expense),
		},
	}, nil
}

func sumRange(repo repository.AccountingRepository, txType model.TransactionType, from, to time.Time) (model.Money, error) {
	totals, err := repo.TotalsByCategory(txType, repository.TransactionFilter{From: from, To: to})
	if err != nil {
		return model.ZeroMoney(), err
	}
	sum := model.ZeroMoney()
	for _, amount := range totals {
		sum = sum.Add(amount)
	}
	return sum, nil
}
