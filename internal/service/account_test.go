package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hishabkhata/cashbook-server/internal/domain"
	"github.com/hishabkhata/cashbook-server/internal/repository"
	"github.com/hishabkhata/cashbook-server/internal/service"
	"github.com/hishabkhata/cashbook-server/internal/testutil"
)

func setupAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()
	return service.NewAccountService(db,
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
	)
}

func TestCreateAccount_StartsAtZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")

	account, err := svc.Create(ctx, user.ID, "Till", domain.AccountTypeCash, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "Till", account.Name)
	assert.Equal(t, domain.AccountTypeCash, account.Type)
	assert.True(t, account.Balance.IsZero())
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).IsZero())
	assert.Equal(t, 0, testutil.CountTransactions(t, db, account.ID))
}

func TestCreateAccount_OpeningBalanceLeavesAnAdjustment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")

	account, err := svc.Create(ctx, user.ID, "Drawer", domain.AccountTypeCash, decimal.NewFromInt(900))

	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(900)))
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 1, testutil.CountTransactions(t, db, account.ID))
}

func TestCreateAccount_FailedCreateLeavesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)

	// no such user: the insert fails and the whole creation, opening
	// adjustment included, must roll back
	_, err := svc.Create(context.Background(), uuid.New(), "Till", domain.AccountTypeCash, decimal.NewFromInt(100))

	require.Error(t, err)
	var accounts, txs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&accounts))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&txs))
	assert.Equal(t, 0, accounts)
	assert.Equal(t, 0, txs)
}

func TestCreateAccount_RejectsUnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")

	_, err := svc.Create(context.Background(), user.ID, "Vault", domain.AccountType("SAVINGS"), decimal.Zero)

	require.ErrorIs(t, err, domain.ErrInvalidAccountType)
}

func TestAdjustBalance_Increase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	account := testutil.SeedTestAccount(t, db, user.ID, "Cash", domain.AccountTypeCash, decimal.NewFromInt(500))

	adjustment, err := svc.AdjustBalance(ctx, user.ID, account.ID, decimal.NewFromInt(650))

	require.NoError(t, err)
	require.NotNil(t, adjustment)
	assert.Equal(t, domain.TxTypeAdjustment, adjustment.Type)
	assert.Equal(t, domain.FlowCredit, adjustment.Flow)
	assert.True(t, adjustment.Amount.Equal(decimal.NewFromInt(150)), "amount: got %s", adjustment.Amount)
	assert.Equal(t, "Balance adjustment", adjustment.Category)
	assert.Contains(t, adjustment.Note, "+150")
	assert.Equal(t, time.Now().Format(domain.DateLayout), adjustment.Date)

	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(decimal.NewFromInt(650)))
	assert.Equal(t, 1, testutil.CountTransactions(t, db, account.ID))
}

func TestAdjustBalance_Decrease(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	account := testutil.SeedTestAccount(t, db, user.ID, "Cash", domain.AccountTypeCash, decimal.NewFromInt(500))

	adjustment, err := svc.AdjustBalance(ctx, user.ID, account.ID, decimal.NewFromInt(300))

	require.NoError(t, err)
	require.NotNil(t, adjustment)
	assert.Equal(t, domain.FlowDebit, adjustment.Flow)
	assert.True(t, adjustment.Amount.Equal(decimal.NewFromInt(200)), "amount: got %s", adjustment.Amount)
	assert.Contains(t, adjustment.Note, "-200")

	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(decimal.NewFromInt(300)))
}

func TestAdjustBalance_NoChangeRecordsNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	account := testutil.SeedTestAccount(t, db, user.ID, "Cash", domain.AccountTypeCash, decimal.NewFromInt(500))

	adjustment, err := svc.AdjustBalance(ctx, user.ID, account.ID, decimal.NewFromInt(500))

	require.NoError(t, err)
	assert.Nil(t, adjustment)
	assert.Equal(t, 0, testutil.CountTransactions(t, db, account.ID))
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(decimal.NewFromInt(500)))
}

func TestAdjustBalance_UnknownAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")

	_, err := svc.AdjustBalance(context.Background(), user.ID, uuid.New(), decimal.NewFromInt(100))

	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAdjustBalance_OtherUsersAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	owner := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	intruder := testutil.SeedTestUser(t, db, "intruder@test.com", "Intruder")
	account := testutil.SeedTestAccount(t, db, owner.ID, "Cash", domain.AccountTypeCash, decimal.NewFromInt(500))

	_, err := svc.AdjustBalance(ctx, intruder.ID, account.ID, decimal.NewFromInt(1000))

	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(decimal.NewFromInt(500)))
}

func TestUpdateAccountDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	account := testutil.SeedTestAccount(t, db, user.ID, "Cash", domain.AccountTypeCash, decimal.NewFromInt(120))

	updated, err := svc.UpdateDetails(ctx, user.ID, account.ID, "bKash", domain.AccountTypeMobile)

	require.NoError(t, err)
	assert.Equal(t, "bKash", updated.Name)
	assert.Equal(t, domain.AccountTypeMobile, updated.Type)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(120)))
}

func TestDeleteAccount_RemovesItsTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	account := testutil.SeedTestAccount(t, db, user.ID, "Cash", domain.AccountTypeCash, decimal.NewFromInt(500))
	testutil.SeedTestTransaction(t, db, user.ID, account.ID, "2026-03-01", decimal.NewFromInt(200), domain.TxTypeIncome, domain.FlowCredit)

	err := svc.Delete(ctx, user.ID, account.ID)

	require.NoError(t, err)
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, account.ID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestDeleteAccount_OtherUsersAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupAccountService(t, db)

	owner := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	intruder := testutil.SeedTestUser(t, db, "intruder@test.com", "Intruder")
	account := testutil.SeedTestAccount(t, db, owner.ID, "Cash", domain.AccountTypeCash, decimal.Zero)

	err := svc.Delete(context.Background(), intruder.ID, account.ID)

	require.ErrorIs(t, err, domain.ErrNotFound)
}
