package handler_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"casino-wallet/internal/adapter/http/handler"
	"casino-wallet/internal/adapter/ledger/evm"
	"casino-wallet/internal/adapter/metrics"
	"casino-wallet/internal/adapter/storage/memory"
	"casino-wallet/internal/core/domain"
	"casino-wallet/internal/core/ports"
	"casino-wallet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testApp is the full stack on the in-memory store with an offline ledger
// gateway, so every external capability takes its local fallback.
type testApp struct {
	router *gin.Engine
	server *httptest.Server
}

func newTestApp(t *testing.T, outcomes ports.OutcomeGenerator) *testApp {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	wallets := memory.NewWalletRepo(store)

	gateway, err := evm.Dial(evm.Config{}, log)
	require.NoError(t, err)
	custody, err := service.NewAESKeyCustody("router-test-key")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	if outcomes == nil {
		outcomes = service.NewSeededSlotMachine(service.SeedFromInt(7))
	}

	svc := service.NewSettlementService(service.SettlementDeps{
		Wallets:      wallets,
		Transactions: memory.NewTransactionRepo(store),
		Bets:         memory.NewBetRepo(store),
		Transactor:   store,
		Gateway:      gateway,
		Custody:      custody,
		Reconciler:   service.NewReconciler(gateway, wallets, store, recorder, log),
		Outcomes:     outcomes,
		Metrics:      recorder,
	}, service.DefaultSettlementConfig(), log, service.WithSleep(func(context.Context, time.Duration) {}))

	router := handler.SetupRouter(handler.RouterDeps{
		SettlementSvc:  svc,
		HealthCheckers: []ports.HealthChecker{store},
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:         log,
	})

	app := &testApp{router: router, server: httptest.NewServer(router)}
	t.Cleanup(app.server.Close)
	return app
}

// losingSpins never pays out.
type losingSpins struct{}

func (losingSpins) Spin(decimal.Decimal) domain.Outcome {
	return domain.Outcome{Combination: []string{"bar", "bell", "cherry"}, Payout: decimal.Zero}
}
