package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind is the kind of balance-affecting event.
type TransactionKind string

const (
	TransactionKindDeposit        TransactionKind = "deposit"
	TransactionKindBet            TransactionKind = "bet"
	TransactionKindWin            TransactionKind = "win"
	TransactionKindInitialDeposit TransactionKind = "initial_deposit"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindDeposit, TransactionKindBet, TransactionKindWin, TransactionKindInitialDeposit:
		return true
	}
	return false
}

// TransactionStatus is the external settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry. Amount is signed: positive
// credits the wallet, negative debits it. Only Status and ConfirmedAt ever
// change after creation, and only forward out of pending.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	WalletID    uuid.UUID         `json:"wallet_id"`
	Reference   string            `json:"transaction_hash"`
	Amount      decimal.Decimal   `json:"amount"`
	Kind        TransactionKind   `json:"type"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
}

// NewTransaction builds a ledger entry. Confirmed entries get ConfirmedAt = now.
func NewTransaction(walletID uuid.UUID, reference string, amount decimal.Decimal,
	kind TransactionKind, status TransactionStatus, now time.Time) *Transaction {
	t := &Transaction{
		ID:        uuid.New(),
		WalletID:  walletID,
		Reference: reference,
		Amount:    amount,
		Kind:      kind,
		Status:    status,
		CreatedAt: now,
	}
	if status == TransactionStatusConfirmed {
		at := now
		t.ConfirmedAt = &at
	}
	return t
}

// IsTerminal returns true if the transaction can no longer change.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusConfirmed || t.Status == TransactionStatusFailed
}

// CanTransitionTo reports whether moving to next is a legal forward step.
func (t *Transaction) CanTransitionTo(next TransactionStatus) bool {
	return t.Status == TransactionStatusPending &&
		(next == TransactionStatusConfirmed || next == TransactionStatusFailed)
}

// IsCredit reports whether the entry increases the wallet balance.
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// Validate checks the sign of Amount against Kind.
func (t *Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidTransactionKind
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	if (t.Kind == TransactionKindBet) != t.Amount.IsNegative() {
		return ErrAmountSign
	}
	return nil
}
