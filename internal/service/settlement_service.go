package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"
	"casino-wallet/pkg/apperror"
	"casino-wallet/pkg/refgen"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	maxOwnerRefLen   = 100
	maxGameKindLen   = 50
	defaultHistory   = 20
	maxHistory       = 100
	msgWalletCreated = "Wallet created successfully"
	msgDepositDone   = "Deposit successful"
	msgDepositLocal  = "Deposit credited locally; external settlement pending"

	msgDepositOverLimit = "Deposit would exceed the maximum wallet balance"
	msgBetWon        = "You won!"
	msgBetLost       = "Better luck next time!"
)

// SettlementConfig holds the tunables of the settlement engine.
type SettlementConfig struct {
	InitialBonus         decimal.Decimal
	FundingInitialDelay  time.Duration
	FundingPollAttempts  int
	FundingPollInterval  time.Duration
	DepositSettleDelay   time.Duration
	SystemWalletEnvelope string // custody envelope of the system wallet secret; empty disables transfers
	IdempotencyTTL       time.Duration
}

// DefaultSettlementConfig returns the production defaults.
func DefaultSettlementConfig() SettlementConfig {
	return SettlementConfig{
		InitialBonus:        decimal.NewFromInt(100),
		FundingInitialDelay: time.Second,
		FundingPollAttempts: 3,
		FundingPollInterval: 500 * time.Millisecond,
		DepositSettleDelay:  500 * time.Millisecond,
		IdempotencyTTL:      24 * time.Hour,
	}
}

// SettlementDeps groups the collaborators of the settlement engine.
// Cache and Metrics are optional.
type SettlementDeps struct {
	Wallets      ports.WalletRepository
	Transactions ports.TransactionRepository
	Bets         ports.BetRepository
	Transactor   ports.DBTransactor
	Gateway      ports.LedgerGateway
	Custody      ports.KeyCustody
	Reconciler   ports.Reconciler
	Outcomes     ports.OutcomeGenerator
	Cache        ports.IdempotencyCache
	Metrics      ports.SettlementMetrics
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration)

// SettlementOption customizes a SettlementServiceImpl.
type SettlementOption func(*SettlementServiceImpl)

// WithSleep replaces the delay used by funding polls and deposit settling.
func WithSleep(fn SleepFunc) SettlementOption {
	return func(s *SettlementServiceImpl) { s.sleep = fn }
}

// WithClock replaces the time source used for ledger timestamps.
func WithClock(now func() time.Time) SettlementOption {
	return func(s *SettlementServiceImpl) { s.now = now }
}

// SettlementServiceImpl implements ports.SettlementService.
type SettlementServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	betRepo    ports.BetRepository
	transactor ports.DBTransactor
	gateway    ports.LedgerGateway
	custody    ports.KeyCustody
	reconciler ports.Reconciler
	outcomes   ports.OutcomeGenerator
	cache      ports.IdempotencyCache
	metrics    ports.SettlementMetrics
	cfg        SettlementConfig
	sleep      SleepFunc
	now        func() time.Time
	log        zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(deps SettlementDeps, cfg SettlementConfig, log zerolog.Logger, opts ...SettlementOption) *SettlementServiceImpl {
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if cfg.FundingPollAttempts < 1 {
		cfg.FundingPollAttempts = 1
	}
	s := &SettlementServiceImpl{
		walletRepo: deps.Wallets,
		txRepo:     deps.Transactions,
		betRepo:    deps.Bets,
		transactor: deps.Transactor,
		gateway:    deps.Gateway,
		custody:    deps.Custody,
		reconciler: deps.Reconciler,
		outcomes:   deps.Outcomes,
		cache:      deps.Cache,
		metrics:    deps.Metrics,
		cfg:        cfg,
		sleep:      sleepContext,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// CreateWallet provisions a wallet for ownerRef and grants the initial bonus.
// The wallet and a pending initial_deposit entry are committed together;
// external funding is then attempted with no lock held and, on success, the
// entry is confirmed with the funding reference.
func (s *SettlementServiceImpl) CreateWallet(ctx context.Context, ownerRef string) *ports.CreateWalletResult {
	res := &ports.CreateWalletResult{}
	ownerRef = strings.TrimSpace(ownerRef)
	if appErr := validateOwnerRef(ownerRef); appErr != nil {
		s.fail(opCreateWallet, &res.Result, appErr)
		return res
	}

	existing, err := s.walletRepo.GetByOwnerRef(ctx, ownerRef)
	if err != nil {
		s.fail(opCreateWallet, &res.Result, s.unexpected(opCreateWallet, ownerRef, fmt.Errorf("lookup wallet: %w", err)))
		return res
	}
	if existing != nil {
		s.existingWallet(res, existing)
		return res
	}

	if err := ctx.Err(); err != nil {
		s.fail(opCreateWallet, &res.Result, apperror.ErrRequestCanceled(err))
		return res
	}

	keypair, err := s.gateway.CreateKeypair(ctx)
	if err != nil {
		s.metrics.GatewayFailed(capabilityCreateKeypair)
		s.fail(opCreateWallet, &res.Result, s.unexpected(opCreateWallet, ownerRef, fmt.Errorf("create keypair: %w", err)))
		return res
	}
	envelope, err := s.custody.Encrypt(keypair.Secret)
	if err != nil {
		s.log.Error().Err(err).Str("owner_ref", ownerRef).Msg("failed to encrypt wallet secret")
		s.fail(opCreateWallet, &res.Result, apperror.ErrCustodyFailure(err))
		return res
	}

	// Past this point the wallet exists; the caller can no longer cancel.
	ctx = context.WithoutCancel(ctx)

	bonus := s.cfg.InitialBonus
	now := s.now()
	wallet := &domain.Wallet{
		ID:              uuid.New(),
		OwnerRef:        ownerRef,
		Address:         keypair.Address,
		EncryptedSecret: envelope,
		Balance:         bonus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	var initial *domain.Transaction
	if bonus.IsPositive() {
		initial = domain.NewTransaction(wallet.ID, refgen.InitialDeposit(), bonus,
			domain.TransactionKindInitialDeposit, domain.TransactionStatusPending, now)
	}

	if err := s.insertWallet(ctx, wallet, initial); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			// lost a concurrent creation race
			existing, lookupErr := s.walletRepo.GetByOwnerRef(ctx, ownerRef)
			if lookupErr == nil && existing != nil {
				s.existingWallet(res, existing)
				return res
			}
		}
		s.fail(opCreateWallet, &res.Result, s.unexpected(opCreateWallet, ownerRef, err))
		return res
	}

	s.log.Info().
		Str("owner_ref", ownerRef).
		Str("address", wallet.Address).
		Str("bonus", bonus.String()).
		Msg("wallet created")

	balance := bonus
	if initial != nil {
		balance = s.fundInitialDeposit(ctx, wallet, initial)
	}

	res.Succeed(msgWalletCreated)
	res.WalletAddress = wallet.Address
	res.Balance = balance
	res.Created = true
	s.metrics.SettlementCompleted(opCreateWallet, outcomeSuccess)
	return res
}

func (s *SettlementServiceImpl) existingWallet(res *ports.CreateWalletResult, w *domain.Wallet) {
	res.Success = false
	res.Message = apperror.ErrWalletExists().Message
	res.WalletAddress = w.Address
	res.Balance = w.Balance
	res.Created = false
	s.metrics.SettlementCompleted(opCreateWallet, outcomeExists)
}

func (s *SettlementServiceImpl) insertWallet(ctx context.Context, wallet *domain.Wallet, initial *domain.Transaction) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}
	if initial != nil {
		if err := s.txRepo.Create(ctx, dbTx, initial); err != nil {
			return fmt.Errorf("create initial deposit: %w", err)
		}
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// fundInitialDeposit requests external funding for the bonus and, when it
// succeeds, confirms the pending initial deposit. It returns the committed
// wallet balance to report.
func (s *SettlementServiceImpl) fundInitialDeposit(ctx context.Context, wallet *domain.Wallet, initial *domain.Transaction) decimal.Decimal {
	bonus := initial.Amount

	fundingRef, err := s.gateway.RequestFunding(ctx, wallet.Address, bonus)
	if err != nil {
		s.metrics.GatewayFailed(capabilityRequestFunding)
		s.log.Warn().Err(err).
			Str("owner_ref", wallet.OwnerRef).
			Str("reference", initial.Reference).
			Msg("initial funding failed, bonus stays pending")
		return s.storedBalance(ctx, wallet.ID, bonus)
	}

	observed, seen := s.pollFunding(ctx, wallet.Address, bonus)
	if !seen {
		s.log.Debug().Str("address", wallet.Address).Msg("funding not visible externally, keeping ledger balance")
	}

	balance, err := s.confirmInitialDeposit(ctx, wallet.ID, initial.ID, fundingRef, observed)
	if err != nil {
		s.log.Error().Err(err).
			Str("owner_ref", wallet.OwnerRef).
			Str("funding_ref", fundingRef).
			Msg("failed to confirm initial deposit")
		return s.storedBalance(ctx, wallet.ID, bonus)
	}
	return balance
}

// storedBalance reads the committed balance of a wallet, which may already
// reflect bets settled since creation. fallback is used if the read fails.
func (s *SettlementServiceImpl) storedBalance(ctx context.Context, walletID uuid.UUID, fallback decimal.Decimal) decimal.Decimal {
	w, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil || w == nil {
		return fallback
	}
	return w.Balance
}

// pollFunding waits for the funded amount to become visible externally. It
// returns the last external reading and whether any reading succeeded.
func (s *SettlementServiceImpl) pollFunding(ctx context.Context, address string, target decimal.Decimal) (decimal.Decimal, bool) {
	last, seen := decimal.Zero, false
	s.sleep(ctx, s.cfg.FundingInitialDelay)
	for attempt := 1; attempt <= s.cfg.FundingPollAttempts; attempt++ {
		if attempt > 1 {
			s.sleep(ctx, s.cfg.FundingPollInterval)
		}
		reading, err := s.gateway.GetBalance(ctx, address)
		if err != nil {
			s.metrics.GatewayFailed(capabilityGetBalance)
			s.log.Debug().Err(err).Int("attempt", attempt).Str("address", address).Msg("funding poll failed")
			continue
		}
		last, seen = reading, true
		if reading.GreaterThanOrEqual(target) {
			break
		}
	}
	return last, seen
}

// confirmInitialDeposit confirms the pending bonus entry. The locked balance
// already includes the bonus and any bets settled since creation; it is only
// raised when the external reading is above it, as in reconciliation.
func (s *SettlementServiceImpl) confirmInitialDeposit(ctx context.Context, walletID, txID uuid.UUID,
	fundingRef string, observed decimal.Decimal) (decimal.Decimal, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lock wallet: %w", err)
	}
	if locked == nil {
		return decimal.Zero, fmt.Errorf("lock wallet: wallet %s not found", walletID)
	}

	balance := locked.Balance
	if observed.GreaterThan(balance) {
		if err := s.walletRepo.UpdateBalance(ctx, dbTx, walletID, observed); err != nil {
			return decimal.Zero, fmt.Errorf("update balance: %w", err)
		}
		balance = observed
	}

	if err := s.txRepo.Transition(ctx, dbTx, txID, domain.TransactionStatusConfirmed, fundingRef, s.now()); err != nil {
		return decimal.Zero, fmt.Errorf("confirm initial deposit: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("commit tx: %w", err)
	}
	return balance, nil
}

// GetBalance returns the reconciled balance of the owner's wallet.
func (s *SettlementServiceImpl) GetBalance(ctx context.Context, ownerRef string) *ports.BalanceResult {
	res := &ports.BalanceResult{}
	wallet, appErr := s.lookupWallet(ctx, opGetBalance, ownerRef)
	if appErr != nil {
		s.fail(opGetBalance, &res.Result, appErr)
		return res
	}

	res.Succeed("Balance retrieved")
	res.WalletAddress = wallet.Address
	res.Balance = s.reconciler.Reconcile(ctx, wallet)
	s.metrics.SettlementCompleted(opGetBalance, outcomeSuccess)
	return res
}

// Deposit credits amount to the owner's wallet. External settlement is
// attempted through funding, then a transfer from the system wallet; the
// local credit is applied whichever path succeeds.
func (s *SettlementServiceImpl) Deposit(ctx context.Context, req ports.DepositRequest) *ports.DepositResult {
	res := &ports.DepositResult{}
	if appErr := amountError("Deposit", req.Amount); appErr != nil {
		s.fail(opDeposit, &res.Result, appErr)
		return res
	}

	wallet, appErr := s.lookupWallet(ctx, opDeposit, req.OwnerRef)
	if appErr != nil {
		s.fail(opDeposit, &res.Result, appErr)
		return res
	}
	if _, err := wallet.Credit(req.Amount); err != nil {
		s.fail(opDeposit, &res.Result, apperror.ErrInvalidAmount(msgDepositOverLimit))
		return res
	}

	replayKey := s.replayKey(opDeposit, wallet.OwnerRef, req.RequestID)
	if s.replay(ctx, replayKey, res) {
		res.Replayed = true
		s.metrics.SettlementCompleted(opDeposit, outcomeReplayed)
		return res
	}

	if err := ctx.Err(); err != nil {
		s.fail(opDeposit, &res.Result, apperror.ErrRequestCanceled(err))
		return res
	}
	ctx = context.WithoutCancel(ctx)

	externalRef := s.settleExternally(ctx, wallet, req.Amount)

	status := domain.TransactionStatusPending
	reference := refgen.LocalDeposit()
	if externalRef != "" {
		status = domain.TransactionStatusConfirmed
		reference = externalRef
	}

	credited, err := s.creditDeposit(ctx, wallet.ID, req.Amount, reference, status)
	if err != nil {
		if errors.Is(err, domain.ErrBalanceLimit) {
			s.fail(opDeposit, &res.Result, apperror.ErrInvalidAmount(msgDepositOverLimit))
			return res
		}
		s.fail(opDeposit, &res.Result, s.unexpected(opDeposit, wallet.OwnerRef, err))
		return res
	}

	if externalRef != "" {
		s.sleep(ctx, s.cfg.DepositSettleDelay)
	}
	final := s.reconciler.Reconcile(ctx, credited)

	if externalRef != "" {
		res.Succeed(msgDepositDone)
		res.TransactionHash = &externalRef
	} else {
		res.Succeed(msgDepositLocal)
	}
	res.NewBalance = final

	s.log.Info().
		Str("owner_ref", wallet.OwnerRef).
		Str("reference", reference).
		Str("amount", req.Amount.String()).
		Str("status", string(status)).
		Str("balance", final.String()).
		Msg("deposit settled")

	s.remember(ctx, replayKey, res)
	s.metrics.SettlementCompleted(opDeposit, outcomeSuccess)
	return res
}

// settleExternally returns the external reference of the first path that
// succeeds, or "" when the deposit can only be credited locally.
func (s *SettlementServiceImpl) settleExternally(ctx context.Context, wallet *domain.Wallet, amount decimal.Decimal) string {
	ref, err := s.gateway.RequestFunding(ctx, wallet.Address, amount)
	if err == nil {
		return ref
	}
	s.metrics.GatewayFailed(capabilityRequestFunding)
	s.log.Warn().Err(err).Str("owner_ref", wallet.OwnerRef).Msg("deposit funding failed, trying system wallet")

	if s.cfg.SystemWalletEnvelope == "" {
		return ""
	}
	secret, err := s.custody.Decrypt(s.cfg.SystemWalletEnvelope)
	if err != nil {
		s.log.Warn().Err(err).Msg("system wallet envelope rejected, crediting locally")
		return ""
	}
	ref, err = s.gateway.Transfer(ctx, secret, wallet.Address, amount)
	if err != nil {
		s.metrics.GatewayFailed(capabilityTransfer)
		s.log.Warn().Err(err).Str("owner_ref", wallet.OwnerRef).Msg("system wallet transfer failed, crediting locally")
		return ""
	}
	return ref
}

func (s *SettlementServiceImpl) creditDeposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal,
	reference string, status domain.TransactionStatus) (*domain.Wallet, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	if locked == nil {
		return nil, fmt.Errorf("lock wallet: wallet %s not found", walletID)
	}

	newBalance, err := locked.Credit(amount)
	if err != nil {
		return nil, fmt.Errorf("credit deposit: %w", err)
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, walletID, newBalance); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	entry := domain.NewTransaction(walletID, reference, amount, domain.TransactionKindDeposit, status, s.now())
	if err := s.txRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	locked.Balance = newBalance
	return locked, nil
}

// PlaceBet settles one wager: debit the stake, spin, credit the payout.
// All writes happen in one atomic unit against the locked wallet.
func (s *SettlementServiceImpl) PlaceBet(ctx context.Context, req ports.PlaceBetRequest) *ports.PlaceBetResult {
	res := &ports.PlaceBetResult{}
	if appErr := amountError("Bet", req.Amount); appErr != nil {
		s.fail(opPlaceBet, &res.Result, appErr)
		return res
	}
	gameKind := strings.TrimSpace(req.GameKind)
	if gameKind == "" {
		gameKind = domain.DefaultGameKind
	}
	if len(gameKind) > maxGameKindLen {
		s.fail(opPlaceBet, &res.Result, apperror.Validation("game_type is too long"))
		return res
	}
	params := req.Params
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	} else if !json.Valid(params) {
		s.fail(opPlaceBet, &res.Result, apperror.Validation("bet_data must be valid JSON"))
		return res
	}

	wallet, appErr := s.lookupWallet(ctx, opPlaceBet, req.OwnerRef)
	if appErr != nil {
		s.fail(opPlaceBet, &res.Result, appErr)
		return res
	}

	replayKey := s.replayKey(opPlaceBet, wallet.OwnerRef, req.RequestID)
	if s.replay(ctx, replayKey, res) {
		res.Replayed = true
		s.metrics.SettlementCompleted(opPlaceBet, outcomeReplayed)
		return res
	}

	authoritative := s.reconciler.Reconcile(ctx, wallet)
	if authoritative.LessThan(req.Amount) {
		s.fail(opPlaceBet, &res.Result, apperror.ErrInsufficientBalance())
		res.Balance = authoritative
		return res
	}

	if err := ctx.Err(); err != nil {
		s.fail(opPlaceBet, &res.Result, apperror.ErrRequestCanceled(err))
		return res
	}
	ctx = context.WithoutCancel(ctx)

	settled, err := s.settleBet(ctx, wallet, req.Amount, gameKind, params)
	if err != nil {
		if errors.Is(err, errInsufficient) {
			s.fail(opPlaceBet, &res.Result, apperror.ErrInsufficientBalance())
			res.Balance = settled.balance
			return res
		}
		if errors.Is(err, domain.ErrBalanceLimit) {
			s.fail(opPlaceBet, &res.Result, apperror.ErrInvalidAmount("Bet payout would exceed the maximum wallet balance"))
			return res
		}
		s.fail(opPlaceBet, &res.Result, s.unexpected(opPlaceBet, wallet.OwnerRef, err))
		return res
	}
	bet, balance := settled.bet, settled.balance

	if bet.IsWin() {
		res.Succeed(msgBetWon)
	} else {
		res.Succeed(msgBetLost)
	}
	res.TransactionHash = bet.Reference
	res.WinAmount = bet.Payout
	res.Balance = balance
	res.WinningCombination = settled.outcome.Combination

	s.log.Info().
		Str("owner_ref", wallet.OwnerRef).
		Str("reference", bet.Reference).
		Str("stake", bet.Stake.String()).
		Str("payout", bet.Payout.String()).
		Str("balance", balance.String()).
		Msg("bet settled")

	s.metrics.PayoutAdded(bet.Payout)
	s.remember(ctx, replayKey, res)
	s.metrics.SettlementCompleted(opPlaceBet, outcomeSuccess)
	return res
}

var errInsufficient = errors.New("insufficient balance")

type betSettlement struct {
	bet     *domain.Bet
	outcome domain.Outcome
	balance decimal.Decimal
}

// settleBet runs the atomic unit of a bet. On errInsufficient only the
// locked balance is set and nothing is written.
func (s *SettlementServiceImpl) settleBet(ctx context.Context, wallet *domain.Wallet, stake decimal.Decimal,
	gameKind string, params json.RawMessage) (betSettlement, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return betSettlement{}, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, wallet.ID)
	if err != nil {
		return betSettlement{}, fmt.Errorf("lock wallet: %w", err)
	}
	if locked == nil {
		return betSettlement{}, fmt.Errorf("lock wallet: wallet %s not found", wallet.ID)
	}
	if !locked.CanCover(stake) {
		return betSettlement{balance: locked.Balance}, errInsufficient
	}

	outcome := s.outcomes.Spin(stake)
	newBalance, err := locked.Settle(stake, outcome.Payout)
	if err != nil {
		return betSettlement{}, fmt.Errorf("settle bet: %w", err)
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, locked.ID, newBalance); err != nil {
		return betSettlement{}, fmt.Errorf("update balance: %w", err)
	}

	now := s.now()
	reference := refgen.Bet()
	bet := &domain.Bet{
		ID:        uuid.New(),
		WalletID:  locked.ID,
		OwnerRef:  locked.OwnerRef,
		Stake:     stake,
		Payout:    outcome.Payout,
		GameKind:  gameKind,
		Reference: reference,
		Params:    params,
		Result:    outcome.JSON(),
		CreatedAt: now,
	}
	if err := bet.Validate(); err != nil {
		return betSettlement{}, fmt.Errorf("validate bet: %w", err)
	}
	if err := s.betRepo.Create(ctx, dbTx, bet); err != nil {
		return betSettlement{}, fmt.Errorf("create bet: %w", err)
	}

	debit := domain.NewTransaction(locked.ID, reference, stake.Neg(),
		domain.TransactionKindBet, domain.TransactionStatusConfirmed, now)
	if err := s.txRepo.Create(ctx, dbTx, debit); err != nil {
		return betSettlement{}, fmt.Errorf("create bet transaction: %w", err)
	}
	if outcome.Payout.IsPositive() {
		credit := domain.NewTransaction(locked.ID, reference, outcome.Payout,
			domain.TransactionKindWin, domain.TransactionStatusConfirmed, now)
		if err := s.txRepo.Create(ctx, dbTx, credit); err != nil {
			return betSettlement{}, fmt.Errorf("create win transaction: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return betSettlement{}, fmt.Errorf("commit tx: %w", err)
	}
	return betSettlement{bet: bet, outcome: outcome, balance: newBalance}, nil
}

// History returns the newest transactions and bets of the owner's wallet.
// limit is clamped to [1, 100]; zero or less selects 20.
func (s *SettlementServiceImpl) History(ctx context.Context, ownerRef string, limit int) *ports.HistoryResult {
	res := &ports.HistoryResult{}
	wallet, appErr := s.lookupWallet(ctx, opHistory, ownerRef)
	if appErr != nil {
		s.fail(opHistory, &res.Result, appErr)
		return res
	}

	limit = clampHistoryLimit(limit)

	txs, err := s.txRepo.ListByWallet(ctx, wallet.ID, limit)
	if err != nil {
		s.fail(opHistory, &res.Result, s.unexpected(opHistory, wallet.OwnerRef, fmt.Errorf("list transactions: %w", err)))
		return res
	}
	bets, err := s.betRepo.ListByOwnerRef(ctx, wallet.OwnerRef, limit)
	if err != nil {
		s.fail(opHistory, &res.Result, s.unexpected(opHistory, wallet.OwnerRef, fmt.Errorf("list bets: %w", err)))
		return res
	}
	total, err := s.txRepo.CountByWallet(ctx, wallet.ID)
	if err != nil {
		s.fail(opHistory, &res.Result, s.unexpected(opHistory, wallet.OwnerRef, fmt.Errorf("count transactions: %w", err)))
		return res
	}

	if txs == nil {
		txs = []domain.Transaction{}
	}
	if bets == nil {
		bets = []domain.Bet{}
	}
	res.Succeed("History retrieved")
	res.Transactions = txs
	res.Bets = bets
	res.TotalTransactions = total
	s.metrics.SettlementCompleted(opHistory, outcomeSuccess)
	return res
}

func clampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultHistory
	case limit > maxHistory:
		return maxHistory
	default:
		return limit
	}
}

// LookupReference returns the ledger entries recorded under reference.
// A bet reference yields both the bet and the win entry.
func (s *SettlementServiceImpl) LookupReference(ctx context.Context, reference string) *ports.ReferenceResult {
	res := &ports.ReferenceResult{}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		s.fail(opLookup, &res.Result, apperror.Validation("reference is required"))
		return res
	}

	txs, err := s.txRepo.ListByReference(ctx, reference)
	if err != nil {
		s.fail(opLookup, &res.Result, s.unexpected(opLookup, "", fmt.Errorf("list by reference: %w", err)))
		return res
	}
	if len(txs) == 0 {
		s.fail(opLookup, &res.Result, apperror.ErrTransactionNotFound())
		return res
	}

	res.Succeed("Transactions retrieved")
	res.Transactions = txs
	s.metrics.SettlementCompleted(opLookup, outcomeSuccess)
	return res
}

// amountError maps domain.CheckAmount failures onto VAL_001 messages
// prefixed with what ("Deposit", "Bet").
func amountError(what string, amount decimal.Decimal) *apperror.AppError {
	err := domain.CheckAmount(amount)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrAmountScale):
		return apperror.ErrInvalidAmount(fmt.Sprintf("%s amount supports at most %d decimal places", what, domain.AmountScale))
	case errors.Is(err, domain.ErrAmountRange):
		return apperror.ErrInvalidAmount(fmt.Sprintf("%s amount must be less than %s", what, domain.MaxAmount))
	default:
		return apperror.ErrInvalidAmount(what + " amount must be greater than 0")
	}
}

func validateOwnerRef(ownerRef string) *apperror.AppError {
	if ownerRef == "" {
		return apperror.Validation("owner_ref is required")
	}
	if len(ownerRef) > maxOwnerRefLen {
		return apperror.Validation("owner_ref must be at most 100 characters")
	}
	return nil
}

func (s *SettlementServiceImpl) lookupWallet(ctx context.Context, op, ownerRef string) (*domain.Wallet, *apperror.AppError) {
	ownerRef = strings.TrimSpace(ownerRef)
	if appErr := validateOwnerRef(ownerRef); appErr != nil {
		return nil, appErr
	}
	wallet, err := s.walletRepo.GetByOwnerRef(ctx, ownerRef)
	if err != nil {
		return nil, s.unexpected(op, ownerRef, fmt.Errorf("lookup wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// unexpected logs err and converts it into a generic failure.
func (s *SettlementServiceImpl) unexpected(op, ownerRef string, err error) *apperror.AppError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrRequestCanceled(err)
	}
	s.log.Error().Err(err).Str("operation", op).Str("owner_ref", ownerRef).Msg("settlement failed")
	return apperror.InternalError(err)
}

func (s *SettlementServiceImpl) fail(op string, r *ports.Result, appErr *apperror.AppError) {
	r.Fail(appErr)
	s.metrics.SettlementCompleted(op, outcomeLabel(appErr))
}

func outcomeLabel(appErr *apperror.AppError) string {
	switch {
	case appErr.HTTPStatus == http.StatusRequestTimeout:
		return outcomeCanceled
	case appErr.HTTPStatus >= http.StatusInternalServerError:
		return outcomeError
	default:
		return outcomeRejected
	}
}

// replayKey returns "" when replay is disabled for the request.
func (s *SettlementServiceImpl) replayKey(op, ownerRef, requestID string) string {
	requestID = strings.TrimSpace(requestID)
	if s.cache == nil || requestID == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s:%s", op, ownerRef, requestID)
}

// replay loads a cached result into out. Cache failures count as a miss.
func (s *SettlementServiceImpl) replay(ctx context.Context, key string, out any) bool {
	if key == "" {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("settlement cache lookup failed, settling normally")
		return false
	}
	if cached == nil {
		return false
	}
	if err := json.Unmarshal(cached, out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached settlement")
		return false
	}
	return true
}

// remember caches a successful result for replay (best-effort).
func (s *SettlementServiceImpl) remember(ctx context.Context, key string, result any) {
	if key == "" {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to encode settlement for cache")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cfg.IdempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache settlement")
	}
}
