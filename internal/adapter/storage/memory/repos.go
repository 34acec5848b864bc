package memory

import (
	"context"
	"fmt"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository on a Store.
type WalletRepo struct{ s *Store }

// TransactionRepo implements ports.TransactionRepository on a Store.
type TransactionRepo struct{ s *Store }

// BetRepo implements ports.BetRepository on a Store.
type BetRepo struct{ s *Store }

func NewWalletRepo(s *Store) *WalletRepo           { return &WalletRepo{s: s} }
func NewTransactionRepo(s *Store) *TransactionRepo { return &TransactionRepo{s: s} }
func NewBetRepo(s *Store) *BetRepo                 { return &BetRepo{s: s} }

func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	t, err := asTx(tx)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}

	// Like a unique index, an insert that collides with an uncommitted
	// insert waits for it and then conflicts or proceeds.
	s := r.s
	for {
		s.mu.Lock()
		if _, ok := s.byOwner[w.OwnerRef]; ok {
			s.mu.Unlock()
			return fmt.Errorf("insert wallet: %w (wallets_owner_ref_key)", ports.ErrConflict)
		}
		if _, ok := s.byAddress[w.Address]; ok {
			s.mu.Unlock()
			return fmt.Errorf("insert wallet: %w (wallets_address_key)", ports.ErrConflict)
		}
		other, ok := s.reservedOwners[w.OwnerRef]
		if !ok || other == t {
			other, ok = s.reservedAddresses[w.Address]
		}
		if ok && other != t {
			s.mu.Unlock()
			if err := other.wait(ctx); err != nil {
				return fmt.Errorf("insert wallet: %w", err)
			}
			continue
		}
		s.reservedOwners[w.OwnerRef] = t
		s.reservedAddresses[w.Address] = t
		s.mu.Unlock()
		break
	}

	if err := t.acquire(ctx, w.ID); err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	t.wallets[w.ID] = *w
	t.created = append(t.created, w.ID)
	return nil
}

func (r *WalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if w, ok := r.s.wallets[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *WalletRepo) GetByOwnerRef(ctx context.Context, ownerRef string) (*domain.Wallet, error) {
	r.s.mu.RLock()
	id, ok := r.s.byOwner[ownerRef]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, fmt.Errorf("get wallet for update by id: %w", err)
	}
	if _, ok := t.wallet(id); !ok {
		return nil, nil
	}
	if err := t.acquire(ctx, id); err != nil {
		return nil, fmt.Errorf("get wallet for update by id: %w", err)
	}
	w, _ := t.wallet(id)
	return &w, nil
}

func (r *WalletRepo) UpdateBalance(_ context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	t, err := asTx(tx)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if balance.IsNegative() {
		return fmt.Errorf("update wallet balance: %w", domain.ErrNegativeBalance)
	}
	if _, ok := t.held[walletID]; !ok {
		return fmt.Errorf("update wallet balance: wallet %s is not locked by this transaction", walletID)
	}
	w, ok := t.wallet(walletID)
	if !ok {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	t.wallets[walletID] = w
	return nil
}

func (r *TransactionRepo) Create(_ context.Context, tx pgx.Tx, e *domain.Transaction) error {
	t, err := asTx(tx)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if _, ok := t.wallet(e.WalletID); !ok {
		return fmt.Errorf("insert transaction: wallet %s does not exist", e.WalletID)
	}
	t.transactions = append(t.transactions, *e)
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.txIndex[id]
	if !ok {
		return nil, nil
	}
	e := r.s.transactions[i]
	return &e, nil
}

func (r *TransactionRepo) ListByReference(_ context.Context, reference string) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Transaction
	for _, e := range r.s.transactions {
		if e.Reference == reference {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *TransactionRepo) ListByWallet(_ context.Context, walletID uuid.UUID, limit int) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	var out []domain.Transaction
	for _, e := range r.s.transactions {
		if e.WalletID == walletID {
			out = append(out, e)
		}
	}
	r.s.mu.RUnlock()
	return newestFirst(out, func(e domain.Transaction) time.Time { return e.CreatedAt }, limit), nil
}

func (r *TransactionRepo) CountByWallet(_ context.Context, walletID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, e := range r.s.transactions {
		if e.WalletID == walletID {
			n++
		}
	}
	return n, nil
}

func (r *TransactionRepo) Transition(_ context.Context, tx pgx.Tx, id uuid.UUID,
	status domain.TransactionStatus, reference string, at time.Time) error {
	t, err := asTx(tx)
	if err != nil {
		return fmt.Errorf("transition transaction: %w", err)
	}
	probe := domain.Transaction{Status: domain.TransactionStatusPending}
	if !probe.CanTransitionTo(status) {
		return fmt.Errorf("transition transaction to %s: %w", status, ports.ErrStaleStatus)
	}

	r.s.mu.RLock()
	pending := t.pendingLocked(id)
	r.s.mu.RUnlock()
	if !pending {
		return fmt.Errorf("transition transaction %s: %w", id, ports.ErrStaleStatus)
	}
	t.transitions = append(t.transitions, transition{id: id, status: status, reference: reference, at: at})
	return nil
}

func (r *BetRepo) Create(_ context.Context, tx pgx.Tx, b *domain.Bet) error {
	t, err := asTx(tx)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	if _, ok := t.wallet(b.WalletID); !ok {
		return fmt.Errorf("insert bet: wallet %s does not exist", b.WalletID)
	}
	t.bets = append(t.bets, *b)
	return nil
}

func (r *BetRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Bet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.bets {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *BetRepo) ListByOwnerRef(_ context.Context, ownerRef string, limit int) ([]domain.Bet, error) {
	r.s.mu.RLock()
	var out []domain.Bet
	for _, b := range r.s.bets {
		if b.OwnerRef == ownerRef {
			out = append(out, b)
		}
	}
	r.s.mu.RUnlock()
	return newestFirst(out, func(b domain.Bet) time.Time { return b.CreatedAt }, limit), nil
}
