package domain

import "errors"

var (
	ErrNegativeBalance        = errors.New("balance would become negative")
	ErrNonPositiveStake       = errors.New("stake must be positive")
	ErrNegativePayout         = errors.New("payout must not be negative")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrZeroAmount             = errors.New("transaction amount must not be zero")
	ErrAmountSign             = errors.New("transaction amount sign does not match kind")
	ErrNonPositiveAmount      = errors.New("amount must be greater than 0")
	ErrAmountScale            = errors.New("amount has more than 18 decimal places")
	ErrAmountRange            = errors.New("amount exceeds the storable maximum")
	ErrBalanceLimit           = errors.New("balance would exceed the storable maximum")
)
