package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	Stripe Provider = "Stripe"
	PayPal Provider = "PayPal"
)

// ParseProvider accepts the provider name in any letter case.
func ParseProvider(s string) (Provider, error) {
	switch {
	case strings.EqualFold(s, string(Stripe)):
		return Stripe, nil
	case strings.EqualFold(s, string(PayPal)):
		return PayPal, nil
	}
	return "", &UnknownProviderError{Name: s}
}

// Outcome classifies a finished checkout attempt.
type Outcome string

const (
	OutcomePaid   Outcome = "paid"
	OutcomeFailed Outcome = "failed"
	OutcomeError  Outcome = "error"
)

type Payment struct {
	ID       string
	Provider Provider
	Amount   float64
}

func NewPayment(provider Provider, amount float64) Payment {
	return Payment{
		ID:       uuid.NewString(),
		Provider: provider,
		Amount:   amount,
	}
}

type Confirmation struct {
	ID        string
	Provider  Provider
	Amount    float64
	Message   string
	CreatedAt time.Time
}

var ErrPaymentFailed = errors.New("payment failed")

// PaymentFailedError is returned by a processor when the provider reports
// an unsuccessful transaction.
type PaymentFailedError struct {
	Provider Provider
	Reason   string
}

func (e *PaymentFailedError) Error() string {
	return string(e.Provider) + " payment failed"
}

func (e *PaymentFailedError) Is(target error) bool {
	return target == ErrPaymentFailed
}

var ErrUnknownProvider = errors.New("unknown provider")

type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return "unknown provider: " + e.Name
}

func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}
