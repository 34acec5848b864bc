package service

import "github.com/shopspring/decimal"

// Gateway capability labels.
const (
	capabilityCreateKeypair  = "create_keypair"
	capabilityGetBalance     = "get_balance"
	capabilityTransfer       = "transfer"
	capabilityRequestFunding = "request_funding"
)

// Settlement operation labels.
const (
	opCreateWallet = "create_wallet"
	opGetBalance   = "get_balance"
	opDeposit      = "deposit"
	opPlaceBet     = "place_bet"
	opHistory      = "history"
	opLookup       = "lookup_reference"
)

// Settlement outcome labels.
const (
	outcomeSuccess  = "success"
	outcomeExists   = "exists"
	outcomeReplayed = "replayed"
	outcomeRejected = "rejected"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

type nopMetrics struct{}

func (nopMetrics) SettlementCompleted(string, string) {}
func (nopMetrics) GatewayFailed(string)               {}
func (nopMetrics) BalanceRaised()                     {}
func (nopMetrics) PayoutAdded(decimal.Decimal)        {}
