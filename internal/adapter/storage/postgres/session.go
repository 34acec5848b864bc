package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// settlementTxOptions is used for every settlement unit of work. Balance
// checks rely on SELECT ... FOR UPDATE, so read committed is sufficient.
var settlementTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.ReadCommitted,
	AccessMode: pgx.ReadWrite,
}

// Transactor opens settlement transactions on the pool. Row locks taken by
// the ...ForUpdate reads last until Commit or Rollback.
type Transactor struct {
	pool Pool
}

func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.BeginTx(ctx, settlementTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin settlement transaction: %w", err)
	}
	return tx, nil
}

const probeTimeout = 2 * time.Second

var errSchemaMissing = errors.New("ledger schema not installed")

// HealthCheck reports the ledger database healthy only when it answers and
// the wallets table exists.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var installed bool
	if err := h.pool.QueryRow(ctx, `SELECT to_regclass('wallets') IS NOT NULL`).Scan(&installed); err != nil {
		return fmt.Errorf("probe ledger database: %w", err)
	}
	if !installed {
		return errSchemaMissing
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgres"
}
