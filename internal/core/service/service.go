package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
)

var _ port.PaymentSender = Checkout{}

type Option func(*options) error

func ProducerOpt(p port.ConfirmationProducer) Option {
	return func(opts *options) error {
		if p != nil {
			opts.producer = p
			return nil
		}
		return errors.New("confirmation producer is nil")
	}
}

func RecorderOpt(r port.CheckoutRecorder) Option {
	return func(opts *options) error {
		if r != nil {
			opts.recorder = r
			return nil
		}
		return errors.New("checkout recorder is nil")
	}
}

func ClockOpt(now func() time.Time) Option {
	return func(opts *options) error {
		if now != nil {
			opts.now = now
			return nil
		}
		return errors.New("clock is nil")
	}
}

type options struct {
	producer port.ConfirmationProducer
	recorder port.CheckoutRecorder
	now      func() time.Time
}

// Checkout routes a payment to the processor of its provider and records
// the resulting confirmation.
type Checkout struct {
	processors map[domain.Provider]port.PaymentProcessor
	producer   port.ConfirmationProducer
	recorder   port.CheckoutRecorder
	now        func() time.Time
}

func New(
	processors map[domain.Provider]port.PaymentProcessor, opts ...Option,
) Checkout {
	const op = "service.New"

	if len(processors) == 0 {
		panic(fmt.Errorf("%s: no payment processors", op))
	}

	options := options{now: time.Now}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(fmt.Errorf("%s: %w", op, err)) //develop mistake
		}
	}

	return Checkout{
		processors: processors,
		producer:   options.producer,
		recorder:   options.recorder,
		now:        options.now,
	}
}

func (s Checkout) Pay(
	ctx context.Context, p domain.Payment,
) (domain.Confirmation, error) {
	const op = "Checkout.Pay"
	log := slog.With(
		"op", op, "paymentID", p.ID, "provider", p.Provider, "amount", p.Amount,
	)

	if err := ctx.Err(); err != nil {
		return domain.Confirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	processor, ok := s.processors[p.Provider]
	if !ok {
		err := &domain.UnknownProviderError{Name: string(p.Provider)}
		return domain.Confirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	msg, err := processor.Pay(p.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			s.record(p, domain.OutcomeFailed)
			log.Warn("payment declined", "err", err)
		} else {
			s.record(p, domain.OutcomeError)
			log.Error("payment processing error", "err", err)
		}
		return domain.Confirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	s.record(p, domain.OutcomePaid)
	c := domain.Confirmation{
		ID:        p.ID,
		Provider:  p.Provider,
		Amount:    p.Amount,
		Message:   msg,
		CreatedAt: s.now().UTC(),
	}
	log.Info("payment confirmed", "confirmation", msg)

	if s.producer != nil {
		if err := s.producer.ProduceConfirmation(ctx, c); err != nil {
			log.Error("failed to publish confirmation", "err", err)
			return c, fmt.Errorf("%s: %w", op, err)
		}
	}

	return c, nil
}

// SendPayment is Pay for callers that only need the error.
func (s Checkout) SendPayment(ctx context.Context, p domain.Payment) error {
	_, err := s.Pay(ctx, p)
	return err
}

func (s Checkout) record(p domain.Payment, outcome domain.Outcome) {
	if s.recorder != nil {
		s.recorder.RecordPayment(p.Provider, outcome, p.Amount)
	}
}
