// Package app holds the wiring shared by the executables.
package app

import (
	"log/slog"
	"os"

	"github.com/niksmo/checkout-adapters/config"
	"github.com/niksmo/checkout-adapters/internal/adapter"
	"github.com/niksmo/checkout-adapters/internal/adapter/sandbox"
	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
)

func InitLogger(level slog.Leveler) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// NewProcessors builds one processor per provider. Stripe goes through the
// live API when a secret key is configured, PayPal always uses the sandbox.
func NewProcessors(
	cfg config.Config,
) map[domain.Provider]port.PaymentProcessor {
	var stripeCl adapter.StripeClient
	if cfg.Stripe.Sandbox() {
		stripeCl = sandbox.NewStripeAPI(
			cfg.Stripe.AccountEmail, sandbox.FailRateOpt(cfg.Stripe.FailRate),
		)
	} else {
		stripeCl = adapter.NewStripeAPIClient(
			adapter.StripeAPIKeyOpt(cfg.Stripe.SecretKey),
			adapter.StripeAccountEmailOpt(cfg.Stripe.AccountEmail),
			adapter.StripePaymentMethodOpt(cfg.Stripe.PaymentMethod),
		)
	}

	paypalCl := sandbox.NewPayPalClient(
		cfg.PayPal.MerchantEmail, sandbox.FailRateOpt(cfg.PayPal.FailRate),
	)

	return map[domain.Provider]port.PaymentProcessor{
		domain.Stripe: adapter.NewStripeAdapter(stripeCl),
		domain.PayPal: adapter.NewPayPalAdapter(paypalCl),
	}
}
