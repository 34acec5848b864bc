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

const betColumns = `id, wallet_id, owner_ref, stake::text, payout::text, game_kind, reference, params, result, created_at`

// BetRepo implements ports.BetRepository.
type BetRepo struct {
	pool Pool
}

// NewBetRepo creates a new BetRepo.
func NewBetRepo(pool Pool) *BetRepo {
	return &BetRepo{pool: pool}
}

// Create inserts a bet within a database transaction.
func (r *BetRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.Bet) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}

	query := `INSERT INTO bets (id, wallet_id, owner_ref, stake, payout, game_kind, reference, params, result, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.WalletID, b.OwnerRef, b.Stake.String(), b.Payout.String(),
		b.GameKind, b.Reference, jsonOrEmpty(b.Params), jsonOrEmpty(b.Result), b.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert bet", err)
	}
	return nil
}

// GetByID fetches a bet by UUID.
func (r *BetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	b, err := scanBet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bet by id: %w", err)
	}
	return b, nil
}

// ListByOwnerRef returns the newest bets of an owner.
func (r *BetRepo) ListByOwnerRef(ctx context.Context, ownerRef string, limit int) ([]domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE owner_ref = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, ownerRef, limit)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("list bets: %w", err)
		}
		bets = append(bets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	return bets, nil
}

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var (
		b             domain.Bet
		stake, payout string
		params, res   []byte
	)
	err := row.Scan(&b.ID, &b.WalletID, &b.OwnerRef, &stake, &payout,
		&b.GameKind, &b.Reference, &params, &res, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Stake, err = decimal.NewFromString(stake); err != nil {
		return nil, fmt.Errorf("parse stake %q: %w", stake, err)
	}
	if b.Payout, err = decimal.NewFromString(payout); err != nil {
		return nil, fmt.Errorf("parse payout %q: %w", payout, err)
	}
	b.Params = params
	b.Result = res
	return &b, nil
}

func jsonOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte(`{}`)
	}
	return raw
}
