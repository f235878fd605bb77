package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/logging"
)

type statsService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (domain.DashboardStats, error)
}

type DashboardHandler struct {
	stats statsService
}

func NewDashboardHandler(stats statsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

type dashboardDTO struct {
	TotalCash       decimal.Decimal `json:"total_cash"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	TodaySales      decimal.Decimal `json:"today_sales"`
	TodayExpense    decimal.Decimal `json:"today_expense"`
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	stats, err := h.stats.Dashboard(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to compute dashboard stats", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, dashboardDTO{
		TotalCash:       stats.TotalCash,
		TotalReceivable: stats.TotalReceivable,
		TotalPayable:    stats.TotalPayable,
		TodaySales:      stats.TodaySales,
		TodayExpense:    stats.TodayExpense,
	})
}
