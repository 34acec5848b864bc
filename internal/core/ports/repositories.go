package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"casino-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrConflict wraps unique-constraint violations (owner ref, address).
	ErrConflict = errors.New("storage conflict")
	// ErrStaleStatus is returned when a status transition finds the row no longer pending.
	ErrStaleStatus = errors.New("transaction is not pending")
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside an atomic unit and lock the wallet row.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByOwnerRef(ctx context.Context, ownerRef string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines persistence operations for ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListByReference(ctx context.Context, reference string) ([]domain.Transaction, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.Transaction, error)
	// CountByWallet counts every entry of a wallet, ignoring any list limit.
	CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
	// Transition moves a pending entry to status. A non-empty reference
	// replaces the stored one. Returns ErrStaleStatus if the entry is not pending.
	Transition(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, reference string, at time.Time) error
}

// BetRepository defines persistence operations for bets.
type BetRepository interface {
	Create(ctx context.Context, tx pgx.Tx, bet *domain.Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	ListByOwnerRef(ctx context.Context, ownerRef string, limit int) ([]domain.Bet, error)
}

// DBTransactor starts an atomic unit of work.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
