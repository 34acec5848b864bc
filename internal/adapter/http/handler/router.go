package handler

import (
	"net/http"

	"casino-wallet/internal/adapter/http/middleware"
	"casino-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc ports.SettlementService
	// RateLimitStore must be a nil interface, not a typed nil, to disable rate limiting.
	RateLimitStore middleware.Limiter
	RateLimitRules map[string]middleware.RateLimitRule // nil = defaults
	HealthCheckers []ports.HealthChecker
	Metrics        http.Handler // nil = no metrics route
	MetricsPath    string
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.Metrics))
	}

	rules := deps.RateLimitRules
	if rules == nil {
		rules = middleware.DefaultRateLimitRules()
	}
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	h := NewCasinoHandler(deps.SettlementSvc)
	casino := r.Group("/api/v1/casino")
	{
		wallet := casino.Group("/wallet")
		wallet.POST("/create", rl(middleware.GroupWalletCreate), h.CreateWallet)
		wallet.GET("/balance", rl(middleware.GroupWalletRead), h.GetBalance)
		wallet.POST("/deposit", rl(middleware.GroupDeposit), h.Deposit)
		wallet.GET("/history", rl(middleware.GroupWalletRead), h.History)

		casino.POST("/bet", rl(middleware.GroupBet), h.PlaceBet)
		casino.GET("/transactions/:reference", rl(middleware.GroupWalletRead), h.LookupReference)
	}

	return r
}
