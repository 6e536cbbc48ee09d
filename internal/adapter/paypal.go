package adapter

import (
	"fmt"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
)

var _ port.PaymentProcessor = PayPalAdapter{}

// PayPalClient is the subset of a PayPal-style SDK the adapter calls.
// MakePayment reports whether the payment went through and the total charged.
type PayPalClient interface {
	MakePayment(amount float64) (bool, float64, error)
	MerchantEmail() string
}

// PayPalAdapter exposes a PayPalClient as a port.PaymentProcessor.
// A typed nil client passes the constructor check; the clients in this
// module report it as an error from MakePayment.
type PayPalAdapter struct {
	client PayPalClient
}

func NewPayPalAdapter(client PayPalClient) PayPalAdapter {
	const op = "NewPayPalAdapter"
	if client == nil {
		panic(fmt.Errorf("%s: paypal client is nil", op)) // develop mistake
	}
	return PayPalAdapter{client}
}

// Pay reports the total returned by PayPal, which may differ from amount.
func (a PayPalAdapter) Pay(amount float64) (string, error) {
	ok, total, err := a.client.MakePayment(amount)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &domain.PaymentFailedError{
			Provider: domain.PayPal, Reason: "declined",
		}
	}

	return fmt.Sprintf(
		"paid %.2f EUR via PayPal (%s)", total, a.client.MerchantEmail(),
	), nil
}
