package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/logging"
)

type accountService interface {
	Create(ctx context.Context, userID uuid.UUID, name string, accountType domain.AccountType, opening decimal.Decimal) (*domain.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	UpdateDetails(ctx context.Context, userID, accountID uuid.UUID, name string, accountType domain.AccountType) (*domain.Account, error)
	Delete(ctx context.Context, userID, accountID uuid.UUID) error
	AdjustBalance(ctx context.Context, userID, accountID uuid.UUID, desired decimal.Decimal) (*domain.Transaction, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createAccountRequest struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

func (r createAccountRequest) Validate() []FieldError {
	errs := accountRequest{Name: r.Name, Type: r.Type}.Validate()
	if r.Balance.IsNegative() {
		errs = append(errs, FieldError{Field: "balance", Message: "must be a non-negative number"})
	}
	return errs
}

type accountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r accountRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if r.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "required"})
	} else if !domain.AccountType(r.Type).IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: "must be CASH, MOBILE, or LOAN"})
	}
	return errs
}

type adjustBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

type accountDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.Create(r.Context(), userID, req.Name, domain.AccountType(req.Type), req.Balance)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	accounts, err := h.accounts.List(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list accounts", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i := range accounts {
		dtos[i] = toAccountDTO(&accounts[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	accountID, appErr := pathID(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.UpdateDetails(r.Context(), userID, accountID, req.Name, domain.AccountType(req.Type))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to update account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	accountID, appErr := pathID(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.accounts.Delete(r.Context(), userID, accountID); err != nil {
		logging.FromContext(r.Context()).Error("failed to delete account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, nil)
}

// Adjust reconciles the account balance to the requested value. The response
// carries the recorded ADJUSTMENT transaction, or null when the balance
// already matched.
func (h *AccountHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requestUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	accountID, appErr := pathID(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req adjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	adjustment, err := h.accounts.AdjustBalance(r.Context(), userID, accountID, req.Balance)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to adjust balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	if adjustment == nil {
		RespondSuccess(w, http.StatusOK, nil)
		return
	}
	RespondSuccess(w, http.StatusOK, toTransactionDTO(adjustment))
}
