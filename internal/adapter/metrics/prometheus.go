// Package metrics exposes settlement metrics to Prometheus.
package metrics

import (
	"casino-wallet/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "casino"

// Recorder implements ports.SettlementMetrics.
type Recorder struct {
	settlements     *prometheus.CounterVec
	gatewayFailures *prometheus.CounterVec
	reconcileRaises prometheus.Counter
	betPayout       prometheus.Counter
}

var _ ports.SettlementMetrics = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		gatewayFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_failures_total",
			Help:      "External ledger calls that failed and were absorbed by a fallback.",
		}, []string{"capability"}),
		reconcileRaises: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_raises_total",
			Help:      "Local balances raised to a higher external reading.",
		}),
		betPayout: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bet_payout_total",
			Help:      "Sum of bet payouts credited to wallets.",
		}),
	}

	for _, c := range []prometheus.Collector{r.settlements, r.gatewayFailures, r.reconcileRaises, r.betPayout} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) SettlementCompleted(operation, outcome string) {
	r.settlements.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) GatewayFailed(capability string) {
	r.gatewayFailures.WithLabelValues(capability).Inc()
}

func (r *Recorder) BalanceRaised() {
	r.reconcileRaises.Inc()
}

// PayoutAdded adds a payout; non-positive amounts are ignored.
func (r *Recorder) PayoutAdded(amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	r.betPayout.Add(amount.InexactFloat64())
}
