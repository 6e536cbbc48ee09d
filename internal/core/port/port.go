package port

import (
	"context"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
)

// PaymentProcessor charges an amount in EUR and returns a human-readable
// confirmation. Provider-reported failures are *domain.PaymentFailedError.
type PaymentProcessor interface {
	Pay(amount float64) (string, error)
}

type PaymentSender interface {
	SendPayment(context.Context, domain.Payment) error
}

type CheckoutRecorder interface {
	RecordPayment(provider domain.Provider, outcome domain.Outcome, amount float64)
}

type ConfirmationProducer interface {
	ProduceConfirmation(context.Context, domain.Confirmation) error
}

type ConfirmationReceiver interface {
	ReceiveConfirmations([]domain.Confirmation)
}

type ConfirmationStorage interface {
	Save([]domain.Confirmation) error
}
