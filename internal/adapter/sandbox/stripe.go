// Package sandbox provides in-process stand-ins for the Stripe and PayPal
// SDKs, used when no live credentials are configured.
package sandbox

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrNilClient      = errors.New("sandbox client is nil")
)

// StripeAPI answers Charge the way the Stripe SDK shapes its result.
type StripeAPI struct {
	email    string
	failRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*options)

type options struct {
	failRate float64
	rnd      *rand.Rand
}

// FailRateOpt sets the share of calls, in [0, 1], the provider declines.
func FailRateOpt(rate float64) Option {
	return func(o *options) {
		o.failRate = min(max(rate, 0), 1)
	}
}

// SeedOpt makes declines reproducible.
func SeedOpt(seed uint64) Option {
	return func(o *options) {
		o.rnd = rand.New(rand.NewPCG(seed, seed))
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

func NewStripeAPI(accountEmail string, opts ...Option) *StripeAPI {
	o := applyOptions(opts)
	return &StripeAPI{
		email:    accountEmail,
		failRate: o.failRate,
		rnd:      o.rnd,
	}
}

func (s *StripeAPI) AccountEmail() string {
	return s.email
}

func (s *StripeAPI) Charge(amountCents int64) (map[string]string, error) {
	const op = "StripeAPI.Charge"

	if s == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilClient)
	}
	if amountCents < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNegativeAmount)
	}

	if s.declined() {
		return map[string]string{"status": "failed"}, nil
	}

	return map[string]string{
		"status": "success",
		"id":     "ch_" + uuid.NewString(),
		"amount": strconv.FormatInt(amountCents, 10),
	}, nil
}

func (s *StripeAPI) declined() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64() < s.failRate
}
