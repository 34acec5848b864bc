package dto

import (
	"encoding/json"
)

// CreateWalletRequest is the request body for wallet creation.
type CreateWalletRequest struct {
	OwnerRef string `json:"owner_ref" binding:"required,max=100,owner_ref"`
}

// DepositRequest is the request body for a deposit. Amount accepts a JSON
// number or a quoted decimal string.
type DepositRequest struct {
	OwnerRef  string      `json:"owner_ref" binding:"required,max=100,owner_ref"`
	Amount    json.Number `json:"amount" binding:"required"`
	RequestID string      `json:"request_id,omitempty" binding:"omitempty,max=100,safe_id"`
}

// PlaceBetRequest is the request body for a wager.
type PlaceBetRequest struct {
	OwnerRef  string          `json:"owner_ref" binding:"required,max=100,owner_ref"`
	Amount    json.Number     `json:"amount" binding:"required"`
	GameType  string          `json:"game_type,omitempty" binding:"omitempty,max=50,safe_id"`
	BetData   json.RawMessage `json:"bet_data,omitempty"`
	RequestID string          `json:"request_id,omitempty" binding:"omitempty,max=100,safe_id"`
}

// OwnerQuery binds the owner_ref query parameter.
type OwnerQuery struct {
	OwnerRef string `form:"owner_ref" binding:"required,max=100,owner_ref"`
}

// HistoryQuery binds the history query parameters. The engine clamps limit.
type HistoryQuery struct {
	OwnerRef string `form:"owner_ref" binding:"required,max=100,owner_ref"`
	Limit    int    `form:"limit"`
}
