package evm

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well-known development key (anvil/hardhat account 0)
const (
	faucetKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	faucetAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	targetAddress = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

type fakeBackend struct {
	mu       sync.Mutex
	chainID  *big.Int
	balances map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	sent     []*types.Transaction
	closed   bool
	fail     error
	deadline bool // records whether calls carried a deadline
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:  big.NewInt(31337),
		balances: make(map[common.Address]*big.Int),
		nonces:   make(map[common.Address]uint64),
	}
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	if b.fail != nil {
		return nil, b.fail
	}
	return b.chainID, nil
}

func (b *fakeBackend) BalanceAt(ctx context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, b.deadline = ctx.Deadline()
	if b.fail != nil {
		return nil, b.fail
	}
	if v, ok := b.balances[account]; ok {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (b *fakeBackend) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[account], nil
}

func (b *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	from, err := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
	if err != nil {
		return err
	}
	b.nonces[from]++
	to := *tx.To()
	if b.balances[to] == nil {
		b.balances[to] = big.NewInt(0)
	}
	b.balances[to].Add(b.balances[to], tx.Value())
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) Close() { b.closed = true }

func newTestGateway(t *testing.T, backend Backend, faucet string) *Gateway {
	t.Helper()
	g, err := New(backend, Config{FaucetKey: faucet, Decimals: 18, CallTimeout: time.Second}, zerolog.Nop())
	require.NoError(t, err)
	return g
}

func TestCreateKeypair(t *testing.T) {
	g := newTestGateway(t, nil, "")

	kp, err := g.CreateKeypair(context.Background())
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(kp.Address))
	assert.Len(t, kp.Secret, 64)

	key, err := crypto.HexToECDSA(kp.Secret)
	require.NoError(t, err)
	assert.Equal(t, kp.Address, crypto.PubkeyToAddress(key.PublicKey).Hex(), "secret controls the address")

	other, err := g.CreateKeypair(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, kp.Address, other.Address)
}

func TestOfflineGateway(t *testing.T) {
	g, err := Dial(Config{}, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = g.GetBalance(ctx, targetAddress)
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
	_, err = g.Transfer(ctx, faucetKey, targetAddress, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
	_, err = g.RequestFunding(ctx, targetAddress, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrFundingUnavailable)

	_, err = g.CreateKeypair(ctx)
	assert.NoError(t, err, "keypairs are generated locally")
	g.Close()
}

func TestDial_UsesBackendFactory(t *testing.T) {
	backend := newFakeBackend()
	orig := dialBackend
	t.Cleanup(func() { dialBackend = orig })

	var dialed string
	dialBackend = func(rawURL string) (Backend, error) {
		dialed = rawURL
		return backend, nil
	}

	g, err := Dial(Config{RPCURL: "http://127.0.0.1:8545"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8545", dialed)

	g.Close()
	assert.True(t, backend.closed)

	dialBackend = func(string) (Backend, error) { return nil, errors.New("connection refused") }
	_, err = Dial(Config{RPCURL: "http://127.0.0.1:1"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNew_InvalidFaucetKey(t *testing.T) {
	_, err := New(nil, Config{FaucetKey: "not-a-key"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestGetBalance(t *testing.T) {
	backend := newFakeBackend()
	backend.balances[common.HexToAddress(targetAddress)] = new(big.Int).Mul(big.NewInt(15), big.NewInt(1e17)) // 1.5
	g := newTestGateway(t, backend, "")

	bal, err := g.GetBalance(context.Background(), targetAddress)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(bal), "got %s", bal)
	assert.True(t, backend.deadline, "calls are bounded by the call timeout")

	_, err = g.GetBalance(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	backend.fail = errors.New("503 from node")
	_, err = g.GetBalance(context.Background(), targetAddress)
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
}

func TestRequestFunding_SignsFromFaucet(t *testing.T) {
	backend := newFakeBackend()
	g := newTestGateway(t, backend, "0x"+faucetKey)
	ctx := context.Background()

	ref, err := g.RequestFunding(ctx, targetAddress, decimal.RequireFromString("2.25"))
	require.NoError(t, err)

	require.Len(t, backend.sent, 1)
	tx := backend.sent[0]
	assert.Equal(t, tx.Hash().Hex(), ref)
	assert.Equal(t, uint64(transferGasLimit), tx.Gas())
	assert.Equal(t, common.HexToAddress(targetAddress), *tx.To())
	assert.Equal(t, "2250000000000000000", tx.Value().String())

	from, err := types.Sender(types.LatestSignerForChainID(backend.chainID), tx)
	require.NoError(t, err)
	assert.Equal(t, faucetAddress, from.Hex())

	bal, err := g.GetBalance(ctx, targetAddress)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.25").Equal(bal))
}

func TestTransfer_NoncesAdvance(t *testing.T) {
	backend := newFakeBackend()
	g := newTestGateway(t, backend, "")
	ctx := context.Background()

	for range 3 {
		_, err := g.Transfer(ctx, faucetKey, targetAddress, decimal.NewFromInt(1))
		require.NoError(t, err)
	}
	require.Len(t, backend.sent, 3)
	for i, tx := range backend.sent {
		assert.Equal(t, uint64(i), tx.Nonce())
	}
}

func TestTransfer_Rejections(t *testing.T) {
	backend := newFakeBackend()
	g := newTestGateway(t, backend, "")
	ctx := context.Background()

	_, err := g.Transfer(ctx, "zz", targetAddress, decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = g.Transfer(ctx, faucetKey, "0x123", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = g.Transfer(ctx, faucetKey, targetAddress, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	backend.fail = errors.New("nonce too low")
	_, err = g.Transfer(ctx, faucetKey, targetAddress, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
	assert.Empty(t, backend.sent)
}

func TestBaseUnitConversion(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		base     string
	}{
		{"1", 18, "1000000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"0.0000000000000000019", 18, "1"}, // truncated
		{"12.5", 6, "12500000"},
		{"3", 0, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := ToBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			assert.Equal(t, tt.base, got.String())
		})
	}

	back := FromBaseUnits(big.NewInt(12500000), 6)
	assert.True(t, decimal.RequireFromString("12.5").Equal(back))
	assert.True(t, FromBaseUnits(nil, 18).IsZero())
}
