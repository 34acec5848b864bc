package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casino-wallet/config"
	httpHandler "casino-wallet/internal/adapter/http/handler"
	"casino-wallet/internal/adapter/http/middleware"
	"casino-wallet/internal/adapter/ledger/evm"
	"casino-wallet/internal/adapter/metrics"
	"casino-wallet/internal/adapter/storage/memory"
	pgStorage "casino-wallet/internal/adapter/storage/postgres"
	redisStorage "casino-wallet/internal/adapter/storage/redis"
	"casino-wallet/internal/core/ports"
	"casino-wallet/internal/service"
	"casino-wallet/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// storage is the ledger store selected by database.driver.
type storage struct {
	wallets      ports.WalletRepository
	transactions ports.TransactionRepository
	bets         ports.BetRepository
	transactor   ports.DBTransactor
	health       ports.HealthChecker
	close        func()
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("driver", cfg.Database.Driver).
		Msg("Starting casino wallet")

	ctx := context.Background()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger store")
	}
	defer store.close()

	healthCheckers := []ports.HealthChecker{store.health}

	// Redis is optional: without it replays are not cached and rate limiting is off.
	var (
		cache     ports.IdempotencyCache
		rateStore middleware.Limiter
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		cache = redisStorage.NewSettlementCache(rdb)
		rateStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	custody, err := service.NewAESKeyCustody(cfg.Custody.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize key custody")
	}

	gateway, err := evm.Dial(evm.Config{
		RPCURL:      cfg.Ledger.RPCURL,
		FaucetKey:   cfg.Ledger.FaucetKey,
		Decimals:    cfg.Ledger.Decimals,
		CallTimeout: cfg.Ledger.CallTimeout,
	}, logger.Component(log, "ledger"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to external ledger")
	}
	defer gateway.Close()

	var (
		recorder       ports.SettlementMetrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to register metrics")
		}
		recorder = rec
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	bonus, err := cfg.Settlement.Bonus()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid initial bonus")
	}

	reconciler := service.NewReconciler(gateway, store.wallets, store.transactor, recorder, logger.Component(log, "reconciler"))
	settlementSvc := service.NewSettlementService(service.SettlementDeps{
		Wallets:      store.wallets,
		Transactions: store.transactions,
		Bets:         store.bets,
		Transactor:   store.transactor,
		Gateway:      gateway,
		Custody:      custody,
		Reconciler:   reconciler,
		Outcomes:     service.NewSlotMachine(),
		Cache:        cache,
		Metrics:      recorder,
	}, service.SettlementConfig{
		InitialBonus:         bonus,
		FundingInitialDelay:  cfg.Settlement.FundingInitialDelay,
		FundingPollAttempts:  cfg.Settlement.FundingPollAttempts,
		FundingPollInterval:  cfg.Settlement.FundingPollInterval,
		DepositSettleDelay:   cfg.Settlement.DepositSettleDelay,
		SystemWalletEnvelope: cfg.Settlement.SystemWalletEnvelope,
		IdempotencyTTL:       cfg.Settlement.IdempotencyTTL,
	}, logger.Component(log, "settlement"))

	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  settlementSvc,
		RateLimitStore: rateStore,
		HealthCheckers: healthCheckers,
		Metrics:        metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory ledger store; balances are lost on restart")
		s := memory.NewStore()
		return &storage{
			wallets:      memory.NewWalletRepo(s),
			transactions: memory.NewTransactionRepo(s),
			bets:         memory.NewBetRepo(s),
			transactor:   s,
			health:       s,
			close:        func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	return &storage{
		wallets:      pgStorage.NewWalletRepo(pool),
		transactions: pgStorage.NewTransactionRepo(pool),
		bets:         pgStorage.NewBetRepo(pool),
		transactor:   pgStorage.NewTransactor(pool),
		health:       pgStorage.NewHealthCheck(pool),
		close:        pool.Close,
	}, nil
}
