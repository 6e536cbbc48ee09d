package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
)

// CheckoutSimulator drives the checkout with random payments, cycling
// through the given providers.
type CheckoutSimulator struct {
	service   port.PaymentSender
	tick      time.Duration
	providers []domain.Provider
	next      int
}

func NewCheckoutSimulator(
	s port.PaymentSender, tick time.Duration, providers ...domain.Provider,
) *CheckoutSimulator {
	const op = "NewCheckoutSimulator"
	if s == nil || tick <= 0 || len(providers) == 0 {
		panic(fmt.Errorf("%s: sender, positive tick and providers are required", op))
	}
	return &CheckoutSimulator{
		service:   s,
		tick:      tick,
		providers: providers,
	}
}

func (g *CheckoutSimulator) Run(ctx context.Context) {
	const op = "CheckoutSimulator.Run"
	log := slog.With("op", op)

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p := g.createRandPayment()
			err := g.service.SendPayment(ctx, p)
			if err != nil {
				log.Warn("checkout failed", "paymentID", p.ID, "err", err)
			}
		}
	}
}

func (g *CheckoutSimulator) createRandPayment() domain.Payment {
	provider := g.providers[g.next%len(g.providers)]
	g.next++
	return domain.NewPayment(provider, randAmount())
}

func randAmount() float64 {
	whole := float64(rand.IntN(1_000) + 1)
	cents := float64(rand.IntN(99)+1) / 100
	return whole + cents
}
