package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ReelCount is the number of symbols in a slot combination.
const ReelCount = 3

// SlotSymbols is the reel alphabet.
var SlotSymbols = []string{
	"bar", "bell", "cherry", "club", "diamond", "heart",
	"lemon", "orange", "plum", "seven", "spade", "star",
}

var slotMultipliers = map[string]int64{
	"seven":   100,
	"diamond": 50,
	"star":    30,
	"bell":    20,
	"bar":     15,
	"heart":   10,
	"spade":   10,
	"club":    10,
	"cherry":  5,
	"lemon":   5,
	"orange":  5,
	"plum":    5,
}

// SlotMultiplier returns the payout multiplier for three of symbol, or 0.
func SlotMultiplier(symbol string) decimal.Decimal {
	return decimal.NewFromInt(slotMultipliers[symbol])
}

// Outcome is the result of one spin.
type Outcome struct {
	Combination []string        `json:"winning_combination"`
	Payout      decimal.Decimal `json:"win_amount"`
}

// IsJackpotLine reports whether every symbol in the combination matches.
func IsJackpotLine(combination []string) bool {
	if len(combination) != ReelCount {
		return false
	}
	for _, s := range combination[1:] {
		if s != combination[0] {
			return false
		}
	}
	return true
}

// PayoutFor computes stake x multiplier for a winning line and 0 otherwise.
func PayoutFor(stake decimal.Decimal, combination []string) decimal.Decimal {
	if !IsJackpotLine(combination) {
		return decimal.Zero
	}
	return stake.Mul(SlotMultiplier(combination[0]))
}

// JSON serializes the outcome for storage on the Bet.
func (o Outcome) JSON() json.RawMessage {
	b, err := json.Marshal(o)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
