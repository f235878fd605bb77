package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidAmount          = errors.New("amount must be a non-negative number")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrEmailTaken             = errors.New("email already registered")
	ErrVersionConflict        = errors.New("optimistic lock conflict")
)
