package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeCash   AccountType = "CASH"
	AccountTypeMobile AccountType = "MOBILE"
	AccountTypeLoan   AccountType = "LOAN"
)

func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeMobile, AccountTypeLoan:
		return true
	}
	return false
}

// Account is a named money holder (cash drawer, mobile-banking wallet or a
// loan counterparty). Balance is a cached fold of the account's transaction
// effects; only the transaction write path is allowed to change it.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
}
