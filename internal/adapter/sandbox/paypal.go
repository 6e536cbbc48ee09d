package sandbox

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// PayPalClient answers MakePayment the way the PayPal SDK does:
// a success flag and the total actually charged.
type PayPalClient struct {
	email    string
	failRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewPayPalClient(merchantEmail string, opts ...Option) *PayPalClient {
	o := applyOptions(opts)
	return &PayPalClient{
		email:    merchantEmail,
		failRate: o.failRate,
		rnd:      o.rnd,
	}
}

func (c *PayPalClient) MerchantEmail() string {
	return c.email
}

func (c *PayPalClient) MakePayment(amount float64) (bool, float64, error) {
	const op = "PayPalClient.MakePayment"

	if c == nil {
		return false, 0, fmt.Errorf("%s: %w", op, ErrNilClient)
	}
	if amount < 0 {
		return false, 0, fmt.Errorf("%s: %w", op, ErrNegativeAmount)
	}

	c.mu.Lock()
	declined := c.rnd.Float64() < c.failRate
	c.mu.Unlock()

	if declined {
		return false, 0, nil
	}
	return true, amount, nil
}
