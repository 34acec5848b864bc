package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// decEq matches a decimal.Decimal by value; gomock's default matcher
// compares the internal representation.
type decEq struct{ want decimal.Decimal }

func eqDec(s string) decEq { return decEq{want: decimal.RequireFromString(s)} }

func (m decEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decEq) String() string { return "is decimal " + m.want.String() }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var errLedgerDown = errors.New("ledger: connection refused")

// fakeGateway is an in-memory ledger network. Each capability can be
// switched off to simulate an outage.
type fakeGateway struct {
	mu        sync.Mutex
	balances  map[string]decimal.Decimal
	seq       int
	keypairs  int
	transfers []fakeTransfer

	failKeypair  bool
	failBalance  bool
	failFunding  bool
	failTransfer bool

	// fundingLag holds back this many GetBalance readings after funding
	fundingLag int
	pending    map[string]decimal.Decimal
}

type fakeTransfer struct {
	From, To string
	Amount   decimal.Decimal
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		balances: make(map[string]decimal.Decimal),
		pending:  make(map[string]decimal.Decimal),
	}
}

func (g *fakeGateway) CreateKeypair(context.Context) (ports.Keypair, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failKeypair {
		return ports.Keypair{}, errLedgerDown
	}
	g.keypairs++
	return ports.Keypair{
		Address: fmt.Sprintf("0x%040x", g.keypairs),
		Secret:  fmt.Sprintf("secret-%d", g.keypairs),
	}, nil
}

func (g *fakeGateway) GetBalance(_ context.Context, address string) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failBalance {
		return decimal.Zero, errLedgerDown
	}
	if amt, ok := g.pending[address]; ok {
		if g.fundingLag > 0 {
			g.fundingLag--
		} else {
			g.balances[address] = g.balances[address].Add(amt)
			delete(g.pending, address)
		}
	}
	return g.balances[address], nil
}

func (g *fakeGateway) Transfer(_ context.Context, fromSecret, toAddress string, amount decimal.Decimal) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failTransfer {
		return "", errLedgerDown
	}
	g.transfers = append(g.transfers, fakeTransfer{From: fromSecret, To: toAddress, Amount: amount})
	g.balances[toAddress] = g.balances[toAddress].Add(amount)
	return g.nextRef(), nil
}

func (g *fakeGateway) RequestFunding(_ context.Context, address string, amount decimal.Decimal) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failFunding {
		return "", errLedgerDown
	}
	if g.fundingLag > 0 {
		g.pending[address] = g.pending[address].Add(amount)
	} else {
		g.balances[address] = g.balances[address].Add(amount)
	}
	return g.nextRef(), nil
}

func (g *fakeGateway) nextRef() string {
	g.seq++
	return fmt.Sprintf("0x%064x", g.seq)
}

func (g *fakeGateway) set(address string, amount decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.balances[address] = amount
}

func (g *fakeGateway) down() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failBalance, g.failFunding, g.failTransfer = true, true, true
}

// fixedOutcomes replays a scripted list of combinations, then loses.
type fixedOutcomes struct {
	mu     sync.Mutex
	script [][]string
	spins  int
}

func (f *fixedOutcomes) Spin(stake decimal.Decimal) domain.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	combo := []string{"bar", "bell", "cherry"}
	if f.spins < len(f.script) {
		combo = f.script[f.spins]
	}
	f.spins++
	return domain.Outcome{Combination: combo, Payout: domain.PayoutFor(stake, combo)}
}

// multiplierOutcome always wins with a fixed multiplier.
type multiplierOutcome struct{ multiplier decimal.Decimal }

func (m multiplierOutcome) Spin(stake decimal.Decimal) domain.Outcome {
	return domain.Outcome{
		Combination: []string{"cherry", "cherry", "cherry"},
		Payout:      stake.Mul(m.multiplier),
	}
}

// reverseCustody is a trivially reversible custody double.
type reverseCustody struct{ fail bool }

func (c reverseCustody) Encrypt(secret string) (string, error) {
	if c.fail {
		return "", errors.New("custody: sealed")
	}
	return "env:" + secret, nil
}

func (c reverseCustody) Decrypt(envelope string) (string, error) {
	if len(envelope) < 4 || envelope[:4] != "env:" {
		return "", ErrMalformedEnvelope
	}
	return envelope[4:], nil
}

// memCache is an in-process ports.IdempotencyCache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	fail    bool
}

func newMemCache() *memCache { return &memCache{entries: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errors.New("cache down")
	}
	return c.entries[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = value
	}
	return nil
}
