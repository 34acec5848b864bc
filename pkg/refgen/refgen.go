// Package refgen produces synthetic settlement references for balance
// changes that have no external ledger transfer behind them.
package refgen

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	PrefixBet            = "bet_"
	PrefixInitialDeposit = "initial-deposit-"
	PrefixLocalDeposit   = "local-deposit-"
)

var (
	entropy   = ulid.Monotonic(rand.Reader, 0)
	entropyMu sync.Mutex
)

// NewULID returns a lexically sortable, monotonic ULID string.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Bet returns a reference for an off-chain wager.
func Bet() string { return PrefixBet + NewULID() }

// InitialDeposit returns a placeholder reference for the signup bonus.
func InitialDeposit() string { return PrefixInitialDeposit + NewULID() }

// LocalDeposit returns a reference for a deposit credited without an
// external transfer.
func LocalDeposit() string { return PrefixLocalDeposit + NewULID() }

// IsSynthetic reports whether ref was produced by this package.
func IsSynthetic(ref string) bool {
	return strings.HasPrefix(ref, PrefixBet) ||
		strings.HasPrefix(ref, PrefixInitialDeposit) ||
		strings.HasPrefix(ref, PrefixLocalDeposit)
}
