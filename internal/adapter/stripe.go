package adapter

import (
	"fmt"
	"math"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
)

var _ port.PaymentProcessor = StripeAdapter{}

const stripeStatusSuccess = "success"

// StripeClient is the subset of a Stripe-style SDK the adapter calls.
// Charge takes the amount in cents and returns a result with a "status" key.
type StripeClient interface {
	Charge(amountCents int64) (map[string]string, error)
	AccountEmail() string
}

// StripeAdapter exposes a StripeClient as a port.PaymentProcessor.
// The client is not owned by the adapter.
// A typed nil client passes the constructor check; the clients in this
// module report it as an error from Charge.
type StripeAdapter struct {
	client StripeClient
}

func NewStripeAdapter(client StripeClient) StripeAdapter {
	const op = "NewStripeAdapter"
	if client == nil {
		panic(fmt.Errorf("%s: stripe client is nil", op)) // develop mistake
	}
	return StripeAdapter{client}
}

// Pay charges amount EUR. The confirmation shows the requested amount,
// the charge itself is made in whole cents.
func (a StripeAdapter) Pay(amount float64) (string, error) {
	res, err := a.client.Charge(toCents(amount))
	if err != nil {
		return "", err
	}

	status, ok := res["status"]
	if !ok {
		status = "missing status"
	}
	if status != stripeStatusSuccess {
		return "", &domain.PaymentFailedError{
			Provider: domain.Stripe, Reason: status,
		}
	}

	return fmt.Sprintf(
		"paid %.2f EUR via Stripe (%s)", amount, a.client.AccountEmail(),
	), nil
}

func toCents(amount float64) int64 {
	return int64(math.RoundToEven(amount * 100))
}
