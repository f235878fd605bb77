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
	"github.com/shopspring/decimal"
)

const adjustmentCategory = "Balance adjustment"

type AccountService struct {
	db       *sql.DB
	accounts accountRepository
	txs      transactionRepository
}

func NewAccountService(db *sql.DB, accounts accountRepository, txs transactionRepository) *AccountService {
	return &AccountService{db: db, accounts: accounts, txs: txs}
}

// Create opens a new account. The balance always starts at zero; a non-zero
// opening balance is recorded as an ADJUSTMENT transaction in the same
// database transaction, so every balance change leaves a ledger row and a
// failed opening leaves no account behind.
func (s *AccountService) Create(ctx context.Context, userID uuid.UUID, name string, accountType domain.AccountType, opening decimal.Decimal) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("Create: %w", domain.ErrInvalidAccountType)
	}
	if opening.IsNegative() {
		return nil, fmt.Errorf("Create: %w", domain.ErrInvalidAmount)
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin: %w", err)
	}
	defer dbTx.Rollback()

	account := &domain.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   decimal.Zero,
		Version:   1,
		CreatedAt: time.Now(),
	}
	if err := s.accounts.Create(ctx, dbTx, account); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	if !opening.IsZero() {
		adjustment := newAdjustment(userID, account.ID, opening)
		if err := s.txs.Create(ctx, dbTx, adjustment); err != nil {
			return nil, fmt.Errorf("Create: opening balance: %w", err)
		}
		if err := s.accounts.UpdateBalance(ctx, dbTx, account.ID, opening, account.Version+1); err != nil {
			return nil, fmt.Errorf("Create: opening balance: %w", err)
		}
		account.Balance = opening
		account.Version++
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "account created",
		slog.String("account_id", account.ID.String()),
		slog.String("type", string(account.Type)),
	)
	return account, nil
}

func (s *AccountService) List(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) UpdateDetails(ctx context.Context, userID, accountID uuid.UUID, name string, accountType domain.AccountType) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("UpdateDetails: %w", domain.ErrInvalidAccountType)
	}

	account, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("UpdateDetails: %w", err)
	}
	if err := s.accounts.UpdateDetails(ctx, accountID, name, accountType); err != nil {
		return nil, fmt.Errorf("UpdateDetails: %w", err)
	}

	account.Name = name
	account.Type = accountType
	return account, nil
}

// Delete removes an account and, through the schema's cascade, every
// transaction recorded against it.
func (s *AccountService) Delete(ctx context.Context, userID, accountID uuid.UUID) error {
	if _, err := s.ownedAccount(ctx, userID, accountID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "account deleted",
		slog.String("account_id", accountID.String()),
	)
	return nil
}

// AdjustBalance reconciles an account's stored balance with a physical
// count. When the desired balance differs from the current one it records a
// single ADJUSTMENT transaction dated today for the absolute difference,
// flowing credit when the balance went up and debit when it went down, and
// moves the balance to the desired value in the same database transaction.
// When they already match it records nothing and returns a nil transaction.
func (s *AccountService) AdjustBalance(ctx context.Context, userID, accountID uuid.UUID, desired decimal.Decimal) (*domain.Transaction, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("AdjustBalance: begin: %w", err)
	}
	defer dbTx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, dbTx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("AdjustBalance: %w", domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("AdjustBalance: %w", err)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("AdjustBalance: %w", domain.ErrAccountNotFound)
	}

	diff := desired.Sub(account.Balance)
	if diff.IsZero() {
		return nil, nil
	}

	adjustment := newAdjustment(userID, accountID, diff)
	if err := s.txs.Create(ctx, dbTx, adjustment); err != nil {
		return nil, fmt.Errorf("AdjustBalance: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, dbTx, accountID, desired, account.Version+1); err != nil {
		return nil, fmt.Errorf("AdjustBalance: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("AdjustBalance: commit: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "balance adjusted",
		slog.String("account_id", accountID.String()),
		slog.String("difference", diff.String()),
	)
	return adjustment, nil
}

// newAdjustment builds the ADJUSTMENT ledger row for a signed balance
// difference: today's date, the absolute amount, flow by sign, and the
// signed difference spelled out in the note.
func newAdjustment(userID, accountID uuid.UUID, diff decimal.Decimal) *domain.Transaction {
	flow := domain.FlowCredit
	note := "Direct balance update. Difference: +" + diff.String()
	if diff.IsNegative() {
		flow = domain.FlowDebit
		note = "Direct balance update. Difference: " + diff.String()
	}

	return &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		AccountID: accountID,
		Date:      time.Now().Format(domain.DateLayout),
		Amount:    diff.Abs(),
		Type:      domain.TxTypeAdjustment,
		Flow:      flow,
		Category:  adjustmentCategory,
		Note:      note,
		CreatedAt: time.Now(),
	}
}

// ownedAccount loads an account and hides its existence from non-owners.
func (s *AccountService) ownedAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return account, nil
}
