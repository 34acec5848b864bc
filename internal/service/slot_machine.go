package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"casino-wallet/internal/core/domain"

	"github.com/shopspring/decimal"
)

// SlotMachine implements ports.OutcomeGenerator with three independent,
// uniform draws from domain.SlotSymbols. Each instance owns its generator.
type SlotMachine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSlotMachine returns a slot machine seeded from crypto/rand.
func NewSlotMachine() *SlotMachine {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return NewSeededSlotMachine(seed)
}

// NewSeededSlotMachine returns a deterministic slot machine.
func NewSeededSlotMachine(seed [32]byte) *SlotMachine {
	return &SlotMachine{rng: rand.New(rand.NewChaCha8(seed))}
}

// SeedFromInt expands n into a ChaCha8 seed.
func SeedFromInt(n uint64) [32]byte {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], n)
	return seed
}

// Spin draws a combination and computes its payout for stake.
func (m *SlotMachine) Spin(stake decimal.Decimal) domain.Outcome {
	combination := make([]string, domain.ReelCount)

	m.mu.Lock()
	for i := range combination {
		combination[i] = domain.SlotSymbols[m.rng.IntN(len(domain.SlotSymbols))]
	}
	m.mu.Unlock()

	return domain.Outcome{
		Combination: combination,
		Payout:      domain.PayoutFor(stake, combination),
	}
}
