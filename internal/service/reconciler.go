package service

import (
	"context"
	"fmt"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReconcilerImpl implements ports.Reconciler with the monotonic rule
// authoritative = max(local, external).
type ReconcilerImpl struct {
	gateway    ports.LedgerGateway
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	metrics    ports.SettlementMetrics
	log        zerolog.Logger
}

// NewReconciler creates a new ReconcilerImpl. metrics may be nil.
func NewReconciler(
	gateway ports.LedgerGateway,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	metrics ports.SettlementMetrics,
	log zerolog.Logger,
) *ReconcilerImpl {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ReconcilerImpl{
		gateway:    gateway,
		walletRepo: walletRepo,
		transactor: transactor,
		metrics:    metrics,
		log:        log,
	}
}

// Reconcile reads the external balance and raises the stored balance when
// the external reading is higher. Failures degrade to the local balance.
// wallet.Balance is updated to the returned value.
func (r *ReconcilerImpl) Reconcile(ctx context.Context, wallet *domain.Wallet) decimal.Decimal {
	local := wallet.Balance

	external, err := r.gateway.GetBalance(ctx, wallet.Address)
	if err != nil {
		r.metrics.GatewayFailed(capabilityGetBalance)
		r.log.Warn().Err(err).
			Str("owner_ref", wallet.OwnerRef).
			Str("address", wallet.Address).
			Msg("external balance unavailable, using local balance")
		return local
	}
	if !external.GreaterThan(local) {
		return local
	}

	balance, raised, err := r.raise(ctx, wallet.ID, external)
	if err != nil {
		r.log.Warn().Err(err).
			Str("owner_ref", wallet.OwnerRef).
			Str("external", external.String()).
			Msg("failed to persist reconciled balance, using local balance")
		return local
	}

	if raised {
		r.metrics.BalanceRaised()
		r.log.Info().
			Str("owner_ref", wallet.OwnerRef).
			Str("local", local.String()).
			Str("external", external.String()).
			Msg("local balance raised to external reading")
	}
	wallet.Balance = balance
	return balance
}

// raise re-reads the wallet under lock and writes external only if it is
// still higher than the stored balance.
func (r *ReconcilerImpl) raise(ctx context.Context, walletID uuid.UUID, external decimal.Decimal) (decimal.Decimal, bool, error) {
	dbTx, err := r.transactor.Begin(ctx)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := r.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("lock wallet: %w", err)
	}
	if locked == nil {
		return decimal.Zero, false, fmt.Errorf("lock wallet: wallet %s not found", walletID)
	}
	if !external.GreaterThan(locked.Balance) {
		return locked.Balance, false, nil
	}

	if err := r.walletRepo.UpdateBalance(ctx, dbTx, walletID, external); err != nil {
		return decimal.Zero, false, fmt.Errorf("update balance: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return decimal.Zero, false, fmt.Errorf("commit tx: %w", err)
	}
	return external, true, nil
}
