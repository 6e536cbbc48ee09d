//go:build !integration

package metrics

import (
	"testing"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	m := NewCheckout(prometheus.NewRegistry())

	m.RecordPayment(domain.Stripe, domain.OutcomePaid, 12.34)
	m.RecordPayment(domain.Stripe, domain.OutcomePaid, 1)
	m.RecordPayment(domain.Stripe, domain.OutcomeFailed, 5)
	m.RecordPayment(domain.PayPal, domain.OutcomeError, 5)

	require.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsTotal.WithLabelValues("Stripe", "paid")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsTotal.WithLabelValues("Stripe", "failed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsTotal.WithLabelValues("PayPal", "error")))
	require.Equal(t, 1, testutil.CollectAndCount(m.AmountEUR))
}
