package domain

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits the ledger stores.
const AmountScale = 18

// MaxAmount is the exclusive upper bound for any stored amount or balance
// (NUMERIC(36,18) leaves 18 integer digits).
var MaxAmount = decimal.New(1, 18)

// CheckAmount validates a caller-supplied stake or deposit.
func CheckAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return ErrNonPositiveAmount
	case !amount.Equal(amount.Truncate(AmountScale)):
		return ErrAmountScale
	case amount.GreaterThanOrEqual(MaxAmount):
		return ErrAmountRange
	}
	return nil
}

func checkBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}
	if balance.GreaterThanOrEqual(MaxAmount) {
		return ErrBalanceLimit
	}
	return nil
}
