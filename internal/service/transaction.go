package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/logging"
	"github.com/hishabkhata/cashbook-server/internal/repository"
	"github.com/shopspring/decimal"
)

// CreateTransactionInput carries the caller-supplied fields of a new
// transaction. Amounts are magnitudes; direction comes from the type.
type CreateTransactionInput struct {
	AccountID    uuid.UUID
	Date         string
	Amount       decimal.Decimal
	Type         domain.TransactionType
	Category     string
	Note         string
	Counterparty *string
}

// UpdateTransactionInput carries the editable fields of an existing
// transaction. Type and account are fixed at creation.
type UpdateTransactionInput struct {
	Date         string
	Amount       decimal.Decimal
	Category     string
	Note         string
	Counterparty *string
}

type TransactionService struct {
	db       *sql.DB
	txs      transactionRepository
	accounts accountRepository
}

func NewTransactionService(db *sql.DB, txs transactionRepository, accounts accountRepository) *TransactionService {
	return &TransactionService{db: db, txs: txs, accounts: accounts}
}

// Create records a transaction and applies its effect to the account
// balance in one database transaction. ADJUSTMENT entries cannot be created
// here; they only come from AccountService.AdjustBalance.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	flow, ok := domain.FlowForType(input.Type)
	if !ok {
		return nil, fmt.Errorf("Create: %w", domain.ErrInvalidTransactionType)
	}
	if !domain.ValidDate(input.Date) {
		return nil, fmt.Errorf("Create: %w", domain.ErrInvalidDate)
	}
	if input.Amount.IsNegative() {
		return nil, fmt.Errorf("Create: %w", domain.ErrInvalidAmount)
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin: %w", err)
	}
	defer dbTx.Rollback()

	account, err := s.lockOwnedAccount(ctx, dbTx, userID, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	t := &domain.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		AccountID:    input.AccountID,
		Date:         input.Date,
		Amount:       input.Amount,
		Type:         input.Type,
		Flow:         flow,
		Category:     input.Category,
		Note:         input.Note,
		Counterparty: input.Counterparty,
		CreatedAt:    time.Now(),
	}
	if err := s.txs.Create(ctx, dbTx, t); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	newBalance := account.Balance.Add(t.Effect())
	if err := s.accounts.UpdateBalance(ctx, dbTx, account.ID, newBalance, account.Version+1); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "transaction recorded",
		slog.String("transaction_id", t.ID.String()),
		slog.String("type", string(t.Type)),
		slog.String("amount", t.Amount.String()),
	)
	return t, nil
}

// Update edits a transaction's date, amount, category, note and
// counterparty. The account balance absorbs the difference between the new
// and old effect; type and flow never change, so the direction of the
// difference is well defined even for ADJUSTMENT rows.
func (s *TransactionService) Update(ctx context.Context, userID, transactionID uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	if !domain.ValidDate(input.Date) {
		return nil, fmt.Errorf("Update: %w", domain.ErrInvalidDate)
	}
	if input.Amount.IsNegative() {
		return nil, fmt.Errorf("Update: %w", domain.ErrInvalidAmount)
	}

	existing, err := s.ownedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Update: begin: %w", err)
	}
	defer dbTx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, dbTx, existing.AccountID)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	updated := *existing
	updated.Date = input.Date
	updated.Amount = input.Amount
	updated.Category = input.Category
	updated.Note = input.Note
	updated.Counterparty = input.Counterparty

	if err := s.txs.Update(ctx, dbTx, &updated); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	delta := updated.Effect().Sub(existing.Effect())
	if err := s.accounts.UpdateBalance(ctx, dbTx, account.ID, account.Balance.Add(delta), account.Version+1); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("Update: commit: %w", err)
	}
	return &updated, nil
}

// Delete removes a transaction and reverses its effect on the account
// balance.
func (s *TransactionService) Delete(ctx context.Context, userID, transactionID uuid.UUID) error {
	existing, err := s.ownedTransaction(ctx, userID, transactionID)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Delete: begin: %w", err)
	}
	defer dbTx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, dbTx, existing.AccountID)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	if err := s.txs.Delete(ctx, dbTx, transactionID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	newBalance := account.Balance.Sub(existing.Effect())
	if err := s.accounts.UpdateBalance(ctx, dbTx, account.ID, newBalance, account.Version+1); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("Delete: commit: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "transaction deleted",
		slog.String("transaction_id", transactionID.String()),
	)
	return nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, fmt.Errorf("List: %w", domain.ErrInvalidTransactionType)
	}
	txs, err := s.txs.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return txs, nil
}

func (s *TransactionService) lockOwnedAccount(ctx context.Context, dbTx *sql.Tx, userID, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetForUpdate(ctx, dbTx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *TransactionService) ownedTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*domain.Transaction, error) {
	t, err := s.txs.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}
