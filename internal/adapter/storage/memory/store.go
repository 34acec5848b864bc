// Package memory is an in-process ledger store. It gives the same guarantees
// as the Postgres store: per-wallet mutual exclusion for locked reads,
// all-or-nothing commits and unique owner refs and addresses.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var errForeignTx = errors.New("memory store: transaction was not started by this store")

// Store holds committed state. Use Begin to open an atomic unit.
type Store struct {
	mu sync.RWMutex

	wallets   map[uuid.UUID]domain.Wallet
	byOwner   map[string]uuid.UUID
	byAddress map[string]uuid.UUID

	// keys claimed by uncommitted wallet inserts
	reservedOwners    map[string]*Tx
	reservedAddresses map[string]*Tx

	transactions []domain.Transaction
	txIndex      map[uuid.UUID]int
	bets         []domain.Bet

	locks map[uuid.UUID]chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets:           make(map[uuid.UUID]domain.Wallet),
		byOwner:           make(map[string]uuid.UUID),
		byAddress:         make(map[string]uuid.UUID),
		reservedOwners:    make(map[string]*Tx),
		reservedAddresses: make(map[string]*Tx),
		txIndex:           make(map[uuid.UUID]int),
		locks:             make(map[uuid.UUID]chan struct{}),
	}
}

// Begin implements ports.DBTransactor.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{
		store:   s,
		held:    make(map[uuid.UUID]struct{}),
		wallets: make(map[uuid.UUID]domain.Wallet),
		done:    make(chan struct{}),
	}, nil
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

func (s *Store) lockFor(id uuid.UUID) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[id] = ch
	}
	return ch
}

type transition struct {
	id        uuid.UUID
	status    domain.TransactionStatus
	reference string
	at        time.Time
}

// Tx is an atomic unit over the store. Writes are staged and applied on
// Commit; wallet locks are released on Commit or Rollback. Only Commit and
// Rollback of the pgx.Tx interface are supported.
type Tx struct {
	pgx.Tx

	store *Store
	held  map[uuid.UUID]struct{}

	wallets      map[uuid.UUID]domain.Wallet
	created      []uuid.UUID
	transactions []domain.Transaction
	transitions  []transition
	bets         []domain.Bet

	closed bool
	done   chan struct{} // closed once the unit commits or rolls back
}

func asTx(tx pgx.Tx) (*Tx, error) {
	mt, ok := tx.(*Tx)
	if !ok || mt == nil {
		return nil, errForeignTx
	}
	if mt.closed {
		return nil, pgx.ErrTxClosed
	}
	return mt, nil
}

func (t *Tx) acquire(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.held[id]; ok {
		return nil
	}
	ch := t.store.lockFor(id)
	select {
	case ch <- struct{}{}:
		t.held[id] = struct{}{}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("lock wallet %s: %w", id, ctx.Err())
	}
}

func (t *Tx) release() {
	for id := range t.held {
		<-t.store.lockFor(id)
	}
	t.held = nil
	close(t.done)
}

// wait blocks until the unit has committed or rolled back.
func (t *Tx) wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// wallet returns the wallet as this unit sees it.
func (t *Tx) wallet(id uuid.UUID) (domain.Wallet, bool) {
	if w, ok := t.wallets[id]; ok {
		return w, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	w, ok := t.store.wallets[id]
	return w, ok
}

// Commit applies every staged write or none of them.
func (t *Tx) Commit(context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	defer t.release()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	defer t.unreserveLocked()

	for _, tr := range t.transitions {
		if !t.pendingLocked(tr.id) {
			return fmt.Errorf("commit: transition %s: %w", tr.id, ports.ErrStaleStatus)
		}
	}

	for _, id := range t.created {
		w := t.wallets[id]
		s.byOwner[w.OwnerRef] = id
		s.byAddress[w.Address] = id
	}
	for id, w := range t.wallets {
		s.wallets[id] = w
	}
	for _, e := range t.transactions {
		s.txIndex[e.ID] = len(s.transactions)
		s.transactions = append(s.transactions, e)
	}
	for _, tr := range t.transitions {
		e := &s.transactions[s.txIndex[tr.id]]
		e.Status = tr.status
		if tr.reference != "" {
			e.Reference = tr.reference
		}
		if tr.status == domain.TransactionStatusConfirmed {
			at := tr.at
			e.ConfirmedAt = &at
		}
	}
	s.bets = append(s.bets, t.bets...)
	return nil
}

// Rollback discards staged writes. Rolling back a closed unit returns
// pgx.ErrTxClosed, matching pgx.
func (t *Tx) Rollback(context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.store.mu.Lock()
	t.unreserveLocked()
	t.store.mu.Unlock()
	t.release()
	return nil
}

func (t *Tx) unreserveLocked() {
	s := t.store
	for _, id := range t.created {
		w := t.wallets[id]
		if s.reservedOwners[w.OwnerRef] == t {
			delete(s.reservedOwners, w.OwnerRef)
		}
		if s.reservedAddresses[w.Address] == t {
			delete(s.reservedAddresses, w.Address)
		}
	}
}

// pendingLocked reports whether a transaction is pending, looking at staged
// entries first. Caller holds s.mu.
func (t *Tx) pendingLocked(id uuid.UUID) bool {
	for _, e := range t.transactions {
		if e.ID == id {
			return e.Status == domain.TransactionStatusPending
		}
	}
	i, ok := t.store.txIndex[id]
	if !ok {
		return false
	}
	return t.store.transactions[i].Status == domain.TransactionStatusPending
}

func newestFirst[T any](items []T, created func(T) time.Time, limit int) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
