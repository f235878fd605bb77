package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/hishabkhata/cashbook-server/internal/domain"
)

func SeedTestUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

func SeedTestAccount(t *testing.T, db *sql.DB, userID uuid.UUID, name string, accountType domain.AccountType, balance decimal.Decimal) *domain.Account {
	t.Helper()

	a := &domain.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   balance,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO accounts (id, user_id, name, type, balance, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Name, a.Type, a.Balance, a.Version, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test account %s: %v", name, err)
	}
	return a
}

func SeedTestTransaction(t *testing.T, db *sql.DB, userID, accountID uuid.UUID, date string, amount decimal.Decimal, txType domain.TransactionType, flow domain.Flow) *domain.Transaction {
	t.Helper()

	tx := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		AccountID: accountID,
		Date:      date,
		Amount:    amount,
		Type:      txType,
		Flow:      flow,
		Category:  "General",
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO transactions (id, user_id, account_id, date, amount, type, flow, category, note, counterparty, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		tx.ID, tx.UserID, tx.AccountID, tx.Date, tx.Amount, tx.Type, tx.Flow,
		tx.Category, tx.Note, tx.Counterparty, tx.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test transaction: %v", err)
	}
	return tx
}

func GetAccountBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("get account balance %s: %v", accountID, err)
	}
	return balance
}

func CountTransactions(t *testing.T, db *sql.DB, accountID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for account %s: %v", accountID, err)
	}
	return count
}
