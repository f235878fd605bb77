package domain

import "github.com/shopspring/decimal"

// DashboardStats is the point-in-time summary shown on the dashboard.
// It is recomputed from the ledger on every read and never persisted.
type DashboardStats struct {
	TotalCash       decimal.Decimal
	TotalReceivable decimal.Decimal
	TotalPayable    decimal.Decimal
	TodaySales      decimal.Decimal
	TodayExpense    decimal.Decimal
}
