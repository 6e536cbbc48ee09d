package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
	"github.com/niksmo/checkout-adapters/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type ConsumerOpt func(*consumerOpts) error

func ConsumerClientOpt(cl ConsumerClient) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if cl != nil {
			opts.cl = cl
			return nil
		}
		return errors.New("consumer client is nil")
	}
}

func ConsumerReceiverOpt(r port.ConfirmationReceiver) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if r != nil {
			opts.receiver = r
			return nil
		}
		return errors.New("consumer receiver is nil")
	}
}

func ConsumerDecodeFnOpt(decodeFn func([]byte, any) error) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if decodeFn != nil {
			opts.decodeFn = decodeFn
			return nil
		}
		return errors.New("consumer decode func is nil")
	}
}

func ConsumerBackoffOpt(d time.Duration) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if d > 0 {
			opts.backoff = d
			return nil
		}
		return errors.New("consumer backoff must be positive")
	}
}

type consumerOpts struct {
	cl       ConsumerClient
	receiver port.ConfirmationReceiver
	decodeFn func([]byte, any) error
	backoff  time.Duration
}

// Consumer reads confirmations back from the audit topic and hands each
// polled batch to the receiver before committing offsets.
type Consumer struct {
	cl       ConsumerClient
	receiver port.ConfirmationReceiver
	decodeFn func([]byte, any) error
	backoff  time.Duration
}

func NewConsumer(opts ...ConsumerOpt) Consumer {
	const op = "NewConsumer"

	if len(opts) == 0 {
		panic(fmt.Errorf("%s: options not set", op))
	}

	options := consumerOpts{backoff: time.Second}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(fmt.Errorf("%s: %w", op, err)) //develop mistake
		}
	}
	if options.cl == nil || options.receiver == nil || options.decodeFn == nil {
		panic(fmt.Errorf("%s: client, receiver and decode func are required", op))
	}

	return Consumer{
		cl:       options.cl,
		receiver: options.receiver,
		decodeFn: options.decodeFn,
		backoff:  options.backoff,
	}
}

func (c Consumer) Close() {
	const op = "Consumer.Close"
	log := slog.With("op", op)

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

func (c Consumer) Run(ctx context.Context) {
	const op = "Consumer.Run"
	log := slog.With("op", op)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info("context canceled")
					continue
				}
				err = fmt.Errorf("%s: %w", op, err)
				log.Error("failed to consume messages", "err", err)
				c.slowDown(ctx)
				continue
			}
			err = c.commit(ctx)
			if err != nil {
				log.Error("failed to commit offset", "err", err)
			}
		}
	}
}

func (c Consumer) commit(ctx context.Context) error {
	const op = "Consumer.commit"
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Consumer) consume(ctx context.Context) error {
	const op = "Consumer.consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if fetches.Empty() {
		return nil
	}

	confirmations := c.toConfirmations(fetches)
	c.receiver.ReceiveConfirmations(confirmations)
	return nil
}

func (c Consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "Consumer.pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err := c.handleErrs(fetches)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return fetches, nil
}

func (c Consumer) handleErrs(fetches kgo.Fetches) error {
	var errsData []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errData := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsData = append(errsData, errData)
		}
	})

	if len(errsData) != 0 {
		return errors.New(strings.Join(errsData, "; "))
	}
	return nil
}

// toConfirmations skips records that do not decode; they stay committed.
func (c Consumer) toConfirmations(fetches kgo.Fetches) []domain.Confirmation {
	const op = "Consumer.toConfirmations"
	log := slog.With("op", op)

	var confirmations []domain.Confirmation

	fetches.EachRecord(func(r *kgo.Record) {
		s, err := c.unmarshal(r.Value)
		if err != nil {
			err = fmt.Errorf("%s: %w", op, err)
			log.Error(
				"failed to unmarshal value",
				"partition", r.Partition, "offset", r.Offset, "err", err,
			)
			return
		}
		confirmations = append(confirmations, toConfirmation(s))
	})
	return confirmations
}

func (c Consumer) unmarshal(v []byte) (schema.ConfirmationV1, error) {
	const op = "Consumer.unmarshal"

	var s schema.ConfirmationV1
	if err := c.decodeFn(v, &s); err != nil {
		return schema.ConfirmationV1{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (c Consumer) slowDown(ctx context.Context) {
	t := time.NewTimer(c.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
