package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/logging"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const defaultAccountName = "Cash"

type UserService struct {
	db       *sql.DB
	users    userRepository
	accounts accountRepository
}

func NewUserService(db *sql.DB, users userRepository, accounts accountRepository) *UserService {
	return &UserService{db: db, users: users, accounts: accounts}
}

// Register creates a user and seeds their cashbook with a default CASH
// account, atomically: a signup either yields both rows or neither.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Register: begin: %w", err)
	}
	defer dbTx.Rollback()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, dbTx, user); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	account := &domain.Account{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      defaultAccountName,
		Type:      domain.AccountTypeCash,
		Balance:   decimal.Zero,
		Version:   1,
		CreatedAt: time.Now(),
	}
	if err := s.accounts.Create(ctx, dbTx, account); err != nil {
		return nil, fmt.Errorf("Register: seed default account: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("Register: commit: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
	)
	return user, nil
}
