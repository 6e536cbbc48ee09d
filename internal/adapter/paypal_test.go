//go:build !integration

package adapter

import (
	"errors"
	"testing"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/stretchr/testify/require"
)

type fakePayPalClient struct {
	email   string
	ok      bool
	total   float64
	err     error
	amounts []float64
}

func (c *fakePayPalClient) MakePayment(amount float64) (bool, float64, error) {
	c.amounts = append(c.amounts, amount)
	return c.ok, c.total, c.err
}

func (c *fakePayPalClient) MerchantEmail() string { return c.email }

func TestPayPalAdapter(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cl := &fakePayPalClient{email: "merchant@example.com", ok: true, total: 12.34}
		msg, err := NewPayPalAdapter(cl).Pay(12.34)
		require.NoError(t, err)
		require.Equal(t, "paid 12.34 EUR via PayPal (merchant@example.com)", msg)
		require.Equal(t, []float64{12.34}, cl.amounts)
	})

	t.Run("ReportsReturnedTotal", func(t *testing.T) {
		cl := &fakePayPalClient{email: "merchant@example.com", ok: true, total: 10}
		msg, err := NewPayPalAdapter(cl).Pay(12.34)
		require.NoError(t, err)
		require.Equal(t, "paid 10.00 EUR via PayPal (merchant@example.com)", msg)
	})

	t.Run("Declined", func(t *testing.T) {
		cl := &fakePayPalClient{ok: false, total: 0}
		msg, err := NewPayPalAdapter(cl).Pay(12.34)
		require.Empty(t, msg)
		require.EqualError(t, err, "PayPal payment failed")
		require.ErrorIs(t, err, domain.ErrPaymentFailed)

		var pfErr *domain.PaymentFailedError
		require.ErrorAs(t, err, &pfErr)
		require.Equal(t, domain.PayPal, pfErr.Provider)
	})

	t.Run("ClientErrorPassesThrough", func(t *testing.T) {
		clientErr := errors.New("timeout")
		cl := &fakePayPalClient{err: clientErr}
		_, err := NewPayPalAdapter(cl).Pay(1)
		require.Same(t, clientErr, err)
	})

	t.Run("NilClientPanics", func(t *testing.T) {
		require.Panics(t, func() { NewPayPalAdapter(nil) })
	})
}
