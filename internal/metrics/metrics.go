package metrics

import (
	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ port.CheckoutRecorder = (*Checkout)(nil)

// Checkout holds checkout outcome collectors.
type Checkout struct {
	PaymentsTotal *prometheus.CounterVec
	AmountEUR     *prometheus.HistogramVec
}

func NewCheckout(reg prometheus.Registerer) *Checkout {
	factory := promauto.With(reg)
	return &Checkout{
		PaymentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_payments_total",
				Help: "Total number of checkout payments by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		AmountEUR: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "checkout_payment_amount_eur",
				Help:    "Amount of paid checkouts in EUR",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"provider"},
		),
	}
}

// RecordPayment counts one checkout; the amount is observed for paid ones only.
func (m *Checkout) RecordPayment(provider domain.Provider, outcome domain.Outcome, amount float64) {
	m.PaymentsTotal.WithLabelValues(string(provider), string(outcome)).Inc()
	if outcome == domain.OutcomePaid {
		m.AmountEUR.WithLabelValues(string(provider)).Observe(amount)
	}
}
