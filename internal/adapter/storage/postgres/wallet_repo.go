package postgres

import (
	"context"
	"errors"
	"fmt"

	"casino-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, owner_ref, address, encrypted_secret, balance::text, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a wallet inside tx. Duplicate owner refs or addresses
// return an error wrapping ports.ErrConflict.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_ref, address, encrypted_secret, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.OwnerRef, w.Address, w.EncryptedSecret,
		w.Balance.String(), w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert wallet", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, id), "get wallet by id")
}

// GetByOwnerRef fetches a wallet by owner reference (without locking).
func (r *WalletRepo) GetByOwnerRef(ctx context.Context, ownerRef string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_ref = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, ownerRef), "get wallet by owner ref")
}

// GetByIDForUpdate fetches a wallet by ID and locks its row.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, id), "get wallet for update by id")
}

// UpdateBalance sets the cached balance within a transaction. The
// balance >= 0 check constraint rejects negative values.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("update wallet balance: %w", domain.ErrNegativeBalance)
	}

	query := `UPDATE wallets SET balance = $1::numeric, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance.String(), walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

func scanWallet(row pgx.Row, op string) (*domain.Wallet, error) {
	var (
		w       domain.Wallet
		balance string
	)
	err := row.Scan(&w.ID, &w.OwnerRef, &w.Address, &w.EncryptedSecret, &balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if w.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("%s: parse balance %q: %w", op, balance, err)
	}
	return &w, nil
}
