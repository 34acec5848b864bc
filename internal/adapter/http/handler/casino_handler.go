package handler

import (
	"net/http"

	"casino-wallet/internal/adapter/http/dto"
	"casino-wallet/internal/core/ports"
	"casino-wallet/pkg/apperror"
	"casino-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CasinoHandler exposes the settlement engine.
type CasinoHandler struct {
	svc ports.SettlementService
}

// NewCasinoHandler creates a new CasinoHandler.
func NewCasinoHandler(svc ports.SettlementService) *CasinoHandler {
	return &CasinoHandler{svc: svc}
}

// CreateWallet handles POST /api/v1/casino/wallet/create.
// 201 when a wallet was made, 200 when the owner already had one.
func (h *CasinoHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	res := h.svc.CreateWallet(c.Request.Context(), req.OwnerRef)
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	reply(c, res.Failure, status, res)
}

// GetBalance handles GET /api/v1/casino/wallet/balance.
func (h *CasinoHandler) GetBalance(c *gin.Context) {
	var q dto.OwnerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	res := h.svc.GetBalance(c.Request.Context(), q.OwnerRef)
	reply(c, res.Failure, http.StatusOK, res)
}

// Deposit handles POST /api/v1/casino/wallet/deposit.
func (h *CasinoHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseAmount(c, req.Amount.String())
	if !ok {
		return
	}

	res := h.svc.Deposit(c.Request.Context(), ports.DepositRequest{
		OwnerRef:  req.OwnerRef,
		Amount:    amount,
		RequestID: req.RequestID,
	})
	reply(c, res.Failure, http.StatusOK, res)
}

// PlaceBet handles POST /api/v1/casino/bet.
func (h *CasinoHandler) PlaceBet(c *gin.Context) {
	var req dto.PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseAmount(c, req.Amount.String())
	if !ok {
		return
	}

	res := h.svc.PlaceBet(c.Request.Context(), ports.PlaceBetRequest{
		OwnerRef:  req.OwnerRef,
		Amount:    amount,
		GameKind:  req.GameType,
		Params:    req.BetData,
		RequestID: req.RequestID,
	})
	reply(c, res.Failure, http.StatusOK, res)
}

// History handles GET /api/v1/casino/wallet/history.
func (h *CasinoHandler) History(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	res := h.svc.History(c.Request.Context(), q.OwnerRef, q.Limit)
	reply(c, res.Failure, http.StatusOK, res)
}

// LookupReference handles GET /api/v1/casino/transactions/:reference.
func (h *CasinoHandler) LookupReference(c *gin.Context) {
	res := h.svc.LookupReference(c.Request.Context(), c.Param("reference"))
	reply(c, res.Failure, http.StatusOK, res)
}

func parseAmount(c *gin.Context, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount("Amount must be a decimal number"))
		return decimal.Zero, false
	}
	return amount, true
}

// reply writes a settlement result. A failed result keeps its payload so the
// caller still sees the balance and message alongside the error code.
func reply(c *gin.Context, failure *apperror.AppError, status int, data interface{}) {
	if failure != nil {
		response.Failed(c, failure, data)
		return
	}
	response.JSON(c, status, data)
}
