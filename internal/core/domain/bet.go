package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultGameKind is used when a bet request names no game.
const DefaultGameKind = "slot"

// Bet records one settled wager. Params and Result are stored as JSON.
type Bet struct {
	ID        uuid.UUID       `json:"id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	OwnerRef  string          `json:"owner_ref"`
	Stake     decimal.Decimal `json:"amount"`
	Payout    decimal.Decimal `json:"win_amount"`
	GameKind  string          `json:"game_type"`
	Reference string          `json:"transaction_hash"`
	Params    json.RawMessage `json:"bet_data,omitempty"`
	Result    json.RawMessage `json:"game_result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate enforces stake > 0 and payout >= 0.
func (b *Bet) Validate() error {
	if !b.Stake.IsPositive() {
		return ErrNonPositiveStake
	}
	if b.Payout.IsNegative() {
		return ErrNegativePayout
	}
	return nil
}

// IsWin reports whether the bet paid out.
func (b *Bet) IsWin() bool {
	return b.Payout.IsPositive()
}
