package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/export"
	"github.com/hishabkhata/cashbook-server/internal/logging"
	"github.com/hishabkhata/cashbook-server/internal/repository"
	"github.com/hishabkhata/cashbook-server/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type transactionService interface {
	Create(ctx context.Context, userID uuid.UUID, input service.CreateTransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, userID, transactionID uuid.UUID, input service.UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, transactionID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]domain.Transaction, error)
}

type accountLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
}

type TransactionHandler struct {
	txs      transactionService
	accounts accountLister
}

func NewTransactionHandler(txs transactionService, accounts accountLister) *TransactionHandler {
	return &TransactionHandler{txs: txs, accounts: accounts}
}

type createTransactionRequest struct {
	AccountID    uuid.UUID       `json:"account_id"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Note         string          `json:"note"`
	Counterparty *string         `json:"counterparty"`
}

func (r createTransactionRequest) Validate() []FieldError {
	var errs []FieldError
	if r.AccountID == uuid.Nil {
		errs = append(errs, FieldError{Field: "account_id", Message: "required"})
	}
	if r.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	} else if !domain.ValidDate(r.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "must be formatted YYYY-MM-DD"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a non-negative number"})
	}
	if r.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "required"})
	}
	return errs
}

type updateTransactionRequest struct {
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Note         string          `json:"note"`
	Counterparty *string         `json:"counterparty"`
}

func (r updateTransactionRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	} else if !domain.ValidDate(r.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "must be formatted YYYY-MM-DD"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a non-negative number"})
	}
	return errs
}

type transactionDTO struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Flow         string          `json:"flow"`
	Category     string          `json:"category"`
	Note         string          `json:"note"`
	Counterparty *string         `json:"counterparty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Date:         t.Date,
		Amount:       t.Amount,
		Type:         string(t.Type),
		Flow:         string(t.Flow),
		Category:     t.Category,
		Note:         t.Note,
		Counterparty: t.Counterparty,
		CreatedAt:    t.CreatedAt,
	}
}

func filterFromQuery(r *http.Request) repository.TransactionFilter {
	q := r.URL.Query()
	return repository.TransactionFilter{
		Search: q.Get("search"),
		Type:   domain.TransactionType(q.Get("type")),
	}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	t, err := h.txs.Create(r.Context(), userID, service.CreateTransactionInput{
		AccountID:    req.AccountID,
		Date:         req.Date,
		Amount:       req.Amount,
		Type:         domain.TransactionType(req.Type),
		Category:     req.Category,
		Note:         req.Note,
		Counterparty: req.Counterparty,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(t))
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	txs, err := h.txs.List(r.Context(), userID, filterFromQuery(r))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(txs))
	for i := range txs {
		dtos[i] = toTransactionDTO(&txs[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	transactionID, appErr := pathID(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	t, err := h.txs.Update(r.Context(), userID, transactionID, service.UpdateTransactionInput{
		Date:         req.Date,
		Amount:       req.Amount,
		Category:     req.Category,
		Note:         req.Note,
		Counterparty: req.Counterparty,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to update transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTO(t))
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	transactionID, appErr := pathID(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.txs.Delete(r.Context(), userID, transactionID); err != nil {
		logging.FromContext(r.Context()).Error("failed to delete transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, nil)
}

// Export streams the caller's history, narrowed by the same search and type
// query parameters as List, as an .xlsx attachment.
func (h *TransactionHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	txs, err := h.txs.List(r.Context(), userID, filterFromQuery(r))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to load transactions for export", "error", err)
		RespondDomainError(w, err)
		return
	}
	accounts, err := h.accounts.List(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to load accounts for export", "error", err)
		RespondDomainError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, export.BuildRows(txs, accounts)); err != nil {
		logging.FromContext(r.Context()).Error("failed to build export workbook", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	filename := fmt.Sprintf("Cashbook_Backup_%s.xlsx", time.Now().Format(domain.DateLayout))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("failed to stream export", "error", err)
	}
}
