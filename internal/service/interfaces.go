package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/repository"
	"github.com/shopspring/decimal"
)

type userRepository interface {
	Create(ctx context.Context, tx *sql.Tx, user *domain.User) error
}

type accountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	Create(ctx context.Context, tx *sql.Tx, account *domain.Account) error
	UpdateDetails(ctx context.Context, id uuid.UUID, name string, accountType domain.AccountType) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal, newVersion int64) error
}

type transactionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]domain.Transaction, error)
	Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	Update(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}
