package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hishabkhata/cashbook-server/internal/domain"
)

const statsToday = "2026-03-10"

func cashAccount(balance string) domain.Account {
	return domain.Account{Type: domain.AccountTypeCash, Balance: decimal.RequireFromString(balance)}
}

func statsTx(txType domain.TransactionType, amount, date string) domain.Transaction {
	flow, ok := domain.FlowForType(txType)
	if !ok {
		flow = domain.FlowCredit
	}
	return domain.Transaction{
		Type:   txType,
		Flow:   flow,
		Amount: decimal.RequireFromString(amount),
		Date:   date,
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Account
		txs      []domain.Transaction
		want     map[string]string
	}{
		{
			name:     "empty inputs yield zeros",
			accounts: nil,
			txs:      nil,
			want: map[string]string{
				"cash": "0", "receivable": "0", "payable": "0", "sales": "0", "expense": "0",
			},
		},
		{
			name:     "cash income and expense",
			accounts: []domain.Account{cashAccount("500")},
			txs: []domain.Transaction{
				statsTx(domain.TxTypeIncome, "200", statsToday),
				statsTx(domain.TxTypeExpense, "50", statsToday),
			},
			want: map[string]string{
				"cash": "500", "receivable": "0", "payable": "0", "sales": "200", "expense": "50",
			},
		},
		{
			name: "total cash sums every cash account and skips the rest",
			accounts: []domain.Account{
				cashAccount("300"),
				cashAccount("150.25"),
				{Type: domain.AccountTypeMobile, Balance: decimal.RequireFromString("999")},
				{Type: domain.AccountTypeLoan, Balance: decimal.RequireFromString("400")},
			},
			want: map[string]string{
				"cash": "450.25", "receivable": "0", "payable": "0", "sales": "0", "expense": "0",
			},
		},
		{
			name: "receivable nets collections against loans given",
			txs: []domain.Transaction{
				statsTx(domain.TxTypeLoanGiven, "1000", "2026-01-05"),
				statsTx(domain.TxTypeLoanCollected, "400", "2026-02-01"),
			},
			want: map[string]string{
				"cash": "0", "receivable": "600", "payable": "0", "sales": "0", "expense": "0",
			},
		},
		{
			name: "payable nets repayments against loans taken",
			txs: []domain.Transaction{
				statsTx(domain.TxTypeLoanTaken, "2500", "2026-01-05"),
				statsTx(domain.TxTypeLoanRepaid, "1000", "2026-02-01"),
				statsTx(domain.TxTypeLoanRepaid, "500", "2026-03-01"),
			},
			want: map[string]string{
				"cash": "0", "receivable": "0", "payable": "1000", "sales": "0", "expense": "0",
			},
		},
		{
			name: "older income and expense stay out of the daily figures",
			txs: []domain.Transaction{
				statsTx(domain.TxTypeIncome, "200", statsToday),
				statsTx(domain.TxTypeIncome, "75", "2026-03-09"),
				statsTx(domain.TxTypeExpense, "30", "2026-03-09"),
			},
			want: map[string]string{
				"cash": "0", "receivable": "0", "payable": "0", "sales": "200", "expense": "0",
			},
		},
		{
			name: "loan activity dated today never counts as sales or expense",
			txs: []domain.Transaction{
				statsTx(domain.TxTypeLoanGiven, "100", statsToday),
				statsTx(domain.TxTypeLoanTaken, "200", statsToday),
				statsTx(domain.TxTypeMobileIn, "50", statsToday),
				statsTx(domain.TxTypeCapitalIn, "500", statsToday),
			},
			want: map[string]string{
				"cash": "0", "receivable": "100", "payable": "200", "sales": "0", "expense": "0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.accounts, tt.txs, statsToday)

			assert.True(t, got.TotalCash.Equal(decimal.RequireFromString(tt.want["cash"])), "total cash: got %s", got.TotalCash)
			assert.True(t, got.TotalReceivable.Equal(decimal.RequireFromString(tt.want["receivable"])), "receivable: got %s", got.TotalReceivable)
			assert.True(t, got.TotalPayable.Equal(decimal.RequireFromString(tt.want["payable"])), "payable: got %s", got.TotalPayable)
			assert.True(t, got.TodaySales.Equal(decimal.RequireFromString(tt.want["sales"])), "sales: got %s", got.TodaySales)
			assert.True(t, got.TodayExpense.Equal(decimal.RequireFromString(tt.want["expense"])), "expense: got %s", got.TodayExpense)
		})
	}
}

func TestComputeStatsOrderIndependent(t *testing.T) {
	txs := []domain.Transaction{
		statsTx(domain.TxTypeLoanGiven, "1000", "2026-01-05"),
		statsTx(domain.TxTypeLoanCollected, "400", "2026-02-01"),
		statsTx(domain.TxTypeIncome, "200", statsToday),
		statsTx(domain.TxTypeExpense, "50", statsToday),
	}
	reversed := make([]domain.Transaction, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		reversed = append(reversed, txs[i])
	}

	forward := ComputeStats(nil, txs, statsToday)
	backward := ComputeStats(nil, reversed, statsToday)

	assert.True(t, forward.TotalReceivable.Equal(backward.TotalReceivable))
	assert.True(t, forward.TotalPayable.Equal(backward.TotalPayable))
	assert.True(t, forward.TodaySales.Equal(backward.TodaySales))
	assert.True(t, forward.TodayExpense.Equal(backward.TodayExpense))
}
