package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
	"github.com/niksmo/checkout-adapters/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ConfirmationProducer = Producer{}

type ProducerClient interface {
	Close()
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

type ProducerOpt func(*producerOpts) error

func ProducerClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl != nil {
			opts.cl = cl
			return nil
		}
		return errors.New("producer client is nil")
	}
}

func ProducerEncodeFnOpt(encodeFn func(v any) ([]byte, error)) ProducerOpt {
	return func(opts *producerOpts) error {
		if encodeFn != nil {
			opts.encodeFn = encodeFn
			return nil
		}
		return errors.New("producer encode func is nil")
	}
}

func ProducerTimeoutOpt(d time.Duration) ProducerOpt {
	return func(opts *producerOpts) error {
		if d > 0 {
			opts.timeout = d
			return nil
		}
		return errors.New("producer timeout must be positive")
	}
}

type producerOpts struct {
	cl       ProducerClient
	encodeFn func(v any) ([]byte, error)
	timeout  time.Duration
}

// Producer publishes checkout confirmations to the audit topic.
type Producer struct {
	cl       ProducerClient
	encodeFn func(v any) ([]byte, error)
	timeout  time.Duration
}

func NewProducer(opts ...ProducerOpt) Producer {
	const op = "NewProducer"

	options := producerOpts{timeout: 5 * time.Second}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(fmt.Errorf("%s: %w", op, err)) //develop mistake
		}
	}
	if options.cl == nil || options.encodeFn == nil {
		panic(fmt.Errorf("%s: client and encode func are required", op))
	}
	return Producer{options.cl, options.encodeFn, options.timeout}
}

func (p Producer) Close() {
	const op = "Producer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p Producer) ProduceConfirmation(
	ctx context.Context, c domain.Confirmation,
) error {
	const op = "Producer.ProduceConfirmation"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.produce(ctx, &r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p Producer) createRecord(c domain.Confirmation) (kgo.Record, error) {
	const op = "Producer.createRecord"

	v, err := p.encodeFn(toSchema(c))
	if err != nil {
		return kgo.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	return kgo.Record{Key: []byte(c.ID), Value: v}, nil
}

func (p Producer) produce(ctx context.Context, r *kgo.Record) error {
	const op = "Producer.produce"
	log := slog.With("op", op)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("message produced", "procDurMs", time.Since(start).Milliseconds())

	return nil
}

func toSchema(c domain.Confirmation) schema.ConfirmationV1 {
	return schema.ConfirmationV1{
		ID:        c.ID,
		Provider:  string(c.Provider),
		Amount:    c.Amount,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func toConfirmation(s schema.ConfirmationV1) domain.Confirmation {
	return domain.Confirmation{
		ID:        s.ID,
		Provider:  domain.Provider(s.Provider),
		Amount:    s.Amount,
		Message:   s.Message,
		CreatedAt: s.CreatedAt.UTC(),
	}
}
