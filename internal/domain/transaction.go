package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxTypeIncome        TransactionType = "INCOME"
	TxTypeExpense       TransactionType = "EXPENSE"
	TxTypeCapitalIn     TransactionType = "CAPITAL_IN"
	TxTypeCapitalOut    TransactionType = "CAPITAL_OUT"
	TxTypeLoanGiven     TransactionType = "LOAN_GIVEN"
	TxTypeLoanTaken     TransactionType = "LOAN_TAKEN"
	TxTypeLoanCollected TransactionType = "LOAN_COLLECTED"
	TxTypeLoanRepaid    TransactionType = "LOAN_REPAID"
	TxTypeMobileIn      TransactionType = "MOBILE_BANKING_RECEIVED"
	TxTypeMobileOut     TransactionType = "MOBILE_BANKING_SENT"
	TxTypeAdjustment    TransactionType = "ADJUSTMENT"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TxTypeIncome, TxTypeExpense, TxTypeCapitalIn, TxTypeCapitalOut,
		TxTypeLoanGiven, TxTypeLoanTaken, TxTypeLoanCollected, TxTypeLoanRepaid,
		TxTypeMobileIn, TxTypeMobileOut, TxTypeAdjustment:
		return true
	}
	return false
}

// Flow is the direction of a transaction's effect on its account balance,
// mirroring a double-entry credit/debit leg. For every type except
// ADJUSTMENT it is fully determined by the type; an adjustment records the
// direction of the reconciliation explicitly since its amount is unsigned.
type Flow string

const (
	FlowCredit Flow = "credit"
	FlowDebit  Flow = "debit"
)

// FlowForType returns the flow implied by a transaction type. ok is false
// for ADJUSTMENT, whose direction is chosen per transaction.
func FlowForType(t TransactionType) (Flow, bool) {
	switch t {
	case TxTypeIncome, TxTypeCapitalIn, TxTypeLoanTaken, TxTypeLoanCollected, TxTypeMobileIn:
		return FlowCredit, true
	case TxTypeExpense, TxTypeCapitalOut, TxTypeLoanGiven, TxTypeLoanRepaid, TxTypeMobileOut:
		return FlowDebit, true
	}
	return "", false
}

// DateLayout is the calendar-date form used everywhere a transaction date
// crosses a boundary: storage, JSON, and today-matching in the stats fold.
const DateLayout = "2006-01-02"

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Transaction is one cashbook entry. Amount is always non-negative; the
// direction of its balance effect lives in Flow.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	AccountID    uuid.UUID
	Date         string
	Amount       decimal.Decimal
	Type         TransactionType
	Flow         Flow
	Category     string
	Note         string
	Counterparty *string
	CreatedAt    time.Time
}

// Effect is the signed balance delta this transaction applies to its
// account: +Amount for a credit, -Amount for a debit.
func (t Transaction) Effect() decimal.Decimal {
	if t.Flow == FlowDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
