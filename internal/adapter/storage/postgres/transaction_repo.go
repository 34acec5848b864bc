package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, wallet_id, reference, amount::text, kind, status, created_at, confirmed_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	query := `INSERT INTO transactions (id, wallet_id, reference, amount, kind, status, created_at, confirmed_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.Reference, t.Amount.String(),
		string(t.Kind), string(t.Status), t.CreatedAt, t.ConfirmedAt,
	)
	if err != nil {
		return wrapWriteErr("insert transaction", err)
	}
	return nil
}

// GetByID fetches a ledger entry by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

// ListByReference returns every entry sharing a reference (a bet and its win
// share one), oldest first.
func (r *TransactionRepo) ListByReference(ctx context.Context, reference string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE reference = $1 ORDER BY created_at ASC, kind ASC`

	return r.list(ctx, "list transactions by reference", query, reference)
}

// ListByWallet returns the newest entries of a wallet.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2`

	return r.list(ctx, "list transactions by wallet", query, walletID, limit)
}

// CountByWallet counts the entries of a wallet.
func (r *TransactionRepo) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`, walletID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Transition moves a pending entry forward. The status guard in the WHERE
// clause makes backward moves impossible.
func (r *TransactionRepo) Transition(ctx context.Context, tx pgx.Tx, id uuid.UUID,
	status domain.TransactionStatus, reference string, at time.Time) error {
	probe := domain.Transaction{Status: domain.TransactionStatusPending}
	if !probe.CanTransitionTo(status) {
		return fmt.Errorf("transition transaction to %s: %w", status, ports.ErrStaleStatus)
	}

	var confirmedAt *time.Time
	if status == domain.TransactionStatusConfirmed {
		confirmedAt = &at
	}

	query := `UPDATE transactions
		SET status = $1, confirmed_at = $2, reference = COALESCE(NULLIF($3, ''), reference)
		WHERE id = $4 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, string(status), confirmedAt, reference, id)
	if err != nil {
		return fmt.Errorf("transition transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transition transaction %s: %w", id, ports.ErrStaleStatus)
	}
	return nil
}

func (r *TransactionRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t            domain.Transaction
		amount       string
		kind, status string
	)
	if err := row.Scan(&t.ID, &t.WalletID, &t.Reference, &amount, &kind, &status, &t.CreatedAt, &t.ConfirmedAt); err != nil {
		return nil, err
	}
	var err error
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	t.Kind = domain.TransactionKind(kind)
	t.Status = domain.TransactionStatus(status)
	return &t, nil
}
