// Package evm implements the external ledger gateway on an EVM chain:
// wallets are secp256k1 accounts and value moves as native-coin transfers.
package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"casino-wallet/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	transferGasLimit = 21000
	defaultDecimals  = 18
	defaultTimeout   = 10 * time.Second
)

var (
	// ErrLedgerUnavailable is returned by every network capability when no
	// RPC endpoint is configured, and wraps RPC failures.
	ErrLedgerUnavailable = errors.New("external ledger unavailable")
	// ErrFundingUnavailable is returned by RequestFunding without a faucet key.
	ErrFundingUnavailable = errors.New("funding source not configured")
	ErrInvalidAddress     = errors.New("invalid ledger address")
	ErrInvalidAmount      = errors.New("transfer amount must be positive")
)

// Backend is the subset of ethclient.Client the gateway uses.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	Close()
}

var dialBackend = func(rawURL string) (Backend, error) {
	client, err := ethclient.Dial(rawURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Config configures the gateway.
type Config struct {
	RPCURL      string
	FaucetKey   string // hex private key funding new wallets; empty disables RequestFunding
	Decimals    int32
	CallTimeout time.Duration
}

// Gateway implements ports.LedgerGateway.
type Gateway struct {
	backend  Backend
	faucet   *ecdsa.PrivateKey
	decimals int32
	timeout  time.Duration
	log      zerolog.Logger

	chainMu sync.Mutex
	chainID *big.Int

	// nonces are assigned from PendingNonceAt; sends from this process
	// are serialized so two transfers never reuse one.
	sendMu sync.Mutex
}

var _ ports.LedgerGateway = (*Gateway)(nil)

// Dial connects to cfg.RPCURL. An empty URL yields an offline gateway.
func Dial(cfg Config, log zerolog.Logger) (*Gateway, error) {
	if strings.TrimSpace(cfg.RPCURL) == "" {
		log.Warn().Msg("ledger rpc_url not set, running gateway offline")
		return New(nil, cfg, log)
	}
	backend, err := dialBackend(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing ledger rpc: %w", err)
	}
	return New(backend, cfg, log)
}

// New builds a gateway on backend. A nil backend makes every network
// capability fail with ErrLedgerUnavailable.
func New(backend Backend, cfg Config, log zerolog.Logger) (*Gateway, error) {
	g := &Gateway{
		backend:  backend,
		decimals: cfg.Decimals,
		timeout:  cfg.CallTimeout,
		log:      log,
	}
	if g.decimals <= 0 {
		g.decimals = defaultDecimals
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	if cfg.FaucetKey != "" {
		key, err := parseKey(cfg.FaucetKey)
		if err != nil {
			return nil, fmt.Errorf("parsing faucet key: %w", err)
		}
		g.faucet = key
	}
	return g, nil
}

func parseKey(secret string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(secret), "0x"))
}

// CreateKeypair generates a fresh account locally; it needs no network.
func (g *Gateway) CreateKeypair(_ context.Context) (ports.Keypair, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return ports.Keypair{}, fmt.Errorf("generating key: %w", err)
	}
	return ports.Keypair{
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Secret:  hex.EncodeToString(crypto.FromECDSA(key)),
	}, nil
}

// GetBalance returns the native balance of address in whole coins.
func (g *Gateway) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	if g.backend == nil {
		return decimal.Zero, ErrLedgerUnavailable
	}
	if !common.IsHexAddress(address) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	wei, err := g.backend.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance of %s: %w", ErrLedgerUnavailable, address, err)
	}
	return FromBaseUnits(wei, g.decimals), nil
}

// Transfer sends amount from the account of fromSecret to toAddress and
// returns the transaction hash.
func (g *Gateway) Transfer(ctx context.Context, fromSecret, toAddress string, amount decimal.Decimal) (string, error) {
	key, err := parseKey(fromSecret)
	if err != nil {
		return "", fmt.Errorf("parsing sender key: %w", err)
	}
	return g.send(ctx, key, toAddress, amount)
}

// RequestFunding sends amount from the faucet account to address.
func (g *Gateway) RequestFunding(ctx context.Context, address string, amount decimal.Decimal) (string, error) {
	if g.faucet == nil {
		return "", ErrFundingUnavailable
	}
	return g.send(ctx, g.faucet, address, amount)
}

func (g *Gateway) send(ctx context.Context, key *ecdsa.PrivateKey, toAddress string, amount decimal.Decimal) (string, error) {
	if g.backend == nil {
		return "", ErrLedgerUnavailable
	}
	if !common.IsHexAddress(toAddress) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, toAddress)
	}
	value := ToBaseUnits(amount, g.decimals)
	if value.Sign() <= 0 {
		return "", ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	chainID, err := g.chain(ctx)
	if err != nil {
		return "", err
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	to := common.HexToAddress(toAddress)

	g.sendMu.Lock()
	defer g.sendMu.Unlock()

	nonce, err := g.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("%w: nonce of %s: %w", ErrLedgerUnavailable, from.Hex(), err)
	}
	gasPrice, err := g.backend.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: gas price: %w", ErrLedgerUnavailable, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      transferGasLimit,
		GasPrice: gasPrice,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return "", fmt.Errorf("signing transfer: %w", err)
	}
	if err := g.backend.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("%w: send transfer: %w", ErrLedgerUnavailable, err)
	}

	hash := signed.Hash().Hex()
	g.log.Debug().
		Str("from", from.Hex()).
		Str("to", to.Hex()).
		Str("amount", amount.String()).
		Str("tx_hash", hash).
		Msg("transfer submitted")
	return hash, nil
}

func (g *Gateway) chain(ctx context.Context) (*big.Int, error) {
	g.chainMu.Lock()
	defer g.chainMu.Unlock()
	if g.chainID != nil {
		return g.chainID, nil
	}
	id, err := g.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: chain id: %w", ErrLedgerUnavailable, err)
	}
	g.chainID = id
	return id, nil
}

// Close releases the RPC connection.
func (g *Gateway) Close() {
	if g.backend != nil {
		g.backend.Close()
	}
}

// ToBaseUnits converts whole coins to the chain's smallest unit, truncating
// any precision beyond decimals.
func ToBaseUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).BigInt()
}

// FromBaseUnits converts the chain's smallest unit to whole coins.
func FromBaseUnits(value *big.Int, decimals int32) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -decimals)
}
