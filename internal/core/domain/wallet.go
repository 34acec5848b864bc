package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a custodial wallet bound to one owner reference and one
// external ledger address. Balance is the locally cached balance and is the
// source of truth for availability.
type Wallet struct {
	ID              uuid.UUID       `json:"id"`
	OwnerRef        string          `json:"owner_ref"`
	Address         string          `json:"wallet_address"`
	EncryptedSecret string          `json:"-"` // custody envelope, never exposed
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CanCover reports whether the wallet holds at least amount.
func (w *Wallet) CanCover(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Settle returns the balance after debiting stake and crediting payout.
// It fails with ErrNegativeBalance or ErrBalanceLimit instead of returning
// a balance the ledger cannot hold.
func (w *Wallet) Settle(stake, payout decimal.Decimal) (decimal.Decimal, error) {
	next := w.Balance.Sub(stake).Add(payout)
	if err := checkBalance(next); err != nil {
		return w.Balance, err
	}
	return next, nil
}

// Credit returns the balance after adding amount.
func (w *Wallet) Credit(amount decimal.Decimal) (decimal.Decimal, error) {
	next := w.Balance.Add(amount)
	if err := checkBalance(next); err != nil {
		return w.Balance, err
	}
	return next, nil
}
