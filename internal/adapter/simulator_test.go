//go:build !integration

package adapter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu       sync.Mutex
	payments []domain.Payment
	onSend   func(n int)
}

func (s *fakeSender) SendPayment(_ context.Context, p domain.Payment) error {
	s.mu.Lock()
	s.payments = append(s.payments, p)
	n := len(s.payments)
	s.mu.Unlock()
	if s.onSend != nil {
		s.onSend(n)
	}
	return nil
}

func TestCheckoutSimulator(t *testing.T) {
	t.Run("CyclesProviders", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := &fakeSender{onSend: func(n int) {
			if n == 4 {
				cancel()
			}
		}}
		sim := NewCheckoutSimulator(s, time.Millisecond, domain.Stripe, domain.PayPal)
		sim.Run(ctx)

		require.GreaterOrEqual(t, len(s.payments), 4)
		for i, p := range s.payments[:4] {
			want := domain.Stripe
			if i%2 == 1 {
				want = domain.PayPal
			}
			require.Equal(t, want, p.Provider)
			require.NotEmpty(t, p.ID)
		}
	})

	t.Run("RandAmountRange", func(t *testing.T) {
		for range 1000 {
			a := randAmount()
			require.GreaterOrEqual(t, a, 1.01)
			require.LessOrEqual(t, a, 1000.99)
		}
	})

	t.Run("InvalidArgsPanic", func(t *testing.T) {
		require.Panics(t, func() { NewCheckoutSimulator(nil, time.Second, domain.Stripe) })
		require.Panics(t, func() { NewCheckoutSimulator(&fakeSender{}, 0, domain.Stripe) })
		require.Panics(t, func() { NewCheckoutSimulator(&fakeSender{}, time.Second) })
	})
}
