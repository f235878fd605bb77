package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/repository"
	"github.com/shopspring/decimal"
)

// ComputeStats derives the dashboard summary from the full account and
// transaction lists. Pure function of its inputs; safe to recompute on
// every request. Empty inputs yield zero-valued fields.
//
// Receivable and payable are running totals over the whole ledger:
// receivable = sum(LOAN_GIVEN) - sum(LOAN_COLLECTED), payable =
// sum(LOAN_TAKEN) - sum(LOAN_REPAID). Today's sales and expense count only transactions dated
// `today` (YYYY-MM-DD). Total cash sums every CASH-type account.
func ComputeStats(accounts []domain.Account, txs []domain.Transaction, today string) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalCash:       decimal.Zero,
		TotalReceivable: decimal.Zero,
		TotalPayable:    decimal.Zero,
		TodaySales:      decimal.Zero,
		TodayExpense:    decimal.Zero,
	}

	for _, a := range accounts {
		if a.Type == domain.AccountTypeCash {
			stats.TotalCash = stats.TotalCash.Add(a.Balance)
		}
	}

	for _, t := range txs {
		switch t.Type {
		case domain.TxTypeLoanGiven:
			stats.TotalReceivable = stats.TotalReceivable.Add(t.Amount)
		case domain.TxTypeLoanCollected:
			stats.TotalReceivable = stats.TotalReceivable.Sub(t.Amount)
		case domain.TxTypeLoanTaken:
			stats.TotalPayable = stats.TotalPayable.Add(t.Amount)
		case domain.TxTypeLoanRepaid:
			stats.TotalPayable = stats.TotalPayable.Sub(t.Amount)
		}

		if !strings.HasPrefix(t.Date, today) {
			continue
		}
		switch t.Type {
		case domain.TxTypeIncome:
			stats.TodaySales = stats.TodaySales.Add(t.Amount)
		case domain.TxTypeExpense:
			stats.TodayExpense = stats.TodayExpense.Add(t.Amount)
		}
	}

	return stats
}

type StatsService struct {
	accounts accountRepository
	txs      transactionRepository
}

func NewStatsService(accounts accountRepository, txs transactionRepository) *StatsService {
	return &StatsService{accounts: accounts, txs: txs}
}

func (s *StatsService) Dashboard(ctx context.Context, userID uuid.UUID) (domain.DashboardStats, error) {
	accounts, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("Dashboard: %w", err)
	}

	txs, err := s.txs.ListByUser(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("Dashboard: %w", err)
	}

	today := time.Now().Format(domain.DateLayout)
	return ComputeStats(accounts, txs, today), nil
}
