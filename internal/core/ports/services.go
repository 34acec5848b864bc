package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"encoding/json"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/pkg/apperror"

	"github.com/shopspring/decimal"
)

// KeyCustody encrypts wallet secrets into self-contained envelopes.
type KeyCustody interface {
	Encrypt(secret string) (string, error)
	Decrypt(envelope string) (string, error)
}

// Keypair is a freshly generated external ledger identity.
type Keypair struct {
	Address string
	Secret  string
}

// LedgerGateway is the capability set of the external ledger network.
// Every call may fail or time out; callers treat failures as recoverable.
type LedgerGateway interface {
	CreateKeypair(ctx context.Context) (Keypair, error)
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	Transfer(ctx context.Context, fromSecret, toAddress string, amount decimal.Decimal) (string, error)
	RequestFunding(ctx context.Context, address string, amount decimal.Decimal) (string, error)
}

// Reconciler merges the local and external balance of a wallet.
type Reconciler interface {
	// Reconcile returns max(local, external), persisting a raise. It never fails.
	Reconcile(ctx context.Context, wallet *domain.Wallet) decimal.Decimal
}

// OutcomeGenerator produces a game result for a stake.
type OutcomeGenerator interface {
	Spin(stake decimal.Decimal) domain.Outcome
}

// IdempotencyCache stores settlement results for replay (best-effort).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SettlementMetrics records settlement outcomes.
type SettlementMetrics interface {
	SettlementCompleted(operation, outcome string)
	GatewayFailed(capability string)
	BalanceRaised()
	PayoutAdded(amount decimal.Decimal)
}

// SettlementService is the settlement engine. Operations never return an
// error: failures are reported through Result.
type SettlementService interface {
	CreateWallet(ctx context.Context, ownerRef string) *CreateWalletResult
	GetBalance(ctx context.Context, ownerRef string) *BalanceResult
	Deposit(ctx context.Context, req DepositRequest) *DepositResult
	PlaceBet(ctx context.Context, req PlaceBetRequest) *PlaceBetResult
	History(ctx context.Context, ownerRef string, limit int) *HistoryResult
	LookupReference(ctx context.Context, reference string) *ReferenceResult
}

// DepositRequest is the input of SettlementService.Deposit.
type DepositRequest struct {
	OwnerRef  string
	Amount    decimal.Decimal
	RequestID string // optional replay key
}

// PlaceBetRequest is the input of SettlementService.PlaceBet.
type PlaceBetRequest struct {
	OwnerRef  string
	Amount    decimal.Decimal
	GameKind  string
	Params    json.RawMessage
	RequestID string // optional replay key
}

// Result carries the success flag and message every operation reports.
// Failure is nil on success and on non-error outcomes such as an
// already-existing wallet.
type Result struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Failure *apperror.AppError `json:"-"`
}

// Fail fills r from appErr.
func (r *Result) Fail(appErr *apperror.AppError) {
	r.Success = false
	r.Message = appErr.Message
	r.Failure = appErr
}

// Succeed marks r successful with message.
func (r *Result) Succeed(message string) {
	r.Success = true
	r.Message = message
	r.Failure = nil
}

type CreateWalletResult struct {
	Result
	WalletAddress string          `json:"wallet_address,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Created       bool            `json:"created"`
}

type BalanceResult struct {
	Result
	WalletAddress string          `json:"wallet_address,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
}

type DepositResult struct {
	Result
	TransactionHash *string         `json:"transaction_hash"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Replayed        bool            `json:"replayed,omitempty"`
}

type PlaceBetResult struct {
	Result
	TransactionHash    string          `json:"transaction_hash,omitempty"`
	WinAmount          decimal.Decimal `json:"win_amount"`
	Balance            decimal.Decimal `json:"balance"`
	WinningCombination []string        `json:"winning_combination,omitempty"`
	Replayed           bool            `json:"replayed,omitempty"`
}

type HistoryResult struct {
	Result
	Transactions []domain.Transaction `json:"transactions"`
	Bets         []domain.Bet         `json:"bets"`
	// TotalTransactions counts every entry of the wallet, not just the page.
	TotalTransactions int64 `json:"total_transactions"`
}

type ReferenceResult struct {
	Result
	Transactions []domain.Transaction `json:"transactions"`
}

// HealthChecker is one entry of the /health dependency report.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
