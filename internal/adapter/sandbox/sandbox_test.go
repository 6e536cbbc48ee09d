//go:build !integration

package sandbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripeAPI(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := NewStripeAPI("acct@example.com")
		res, err := api.Charge(1234)
		require.NoError(t, err)
		require.Equal(t, "success", res["status"])
		require.Equal(t, "1234", res["amount"])
		require.Regexp(t, "^ch_", res["id"])
		require.Equal(t, "acct@example.com", api.AccountEmail())
	})

	t.Run("AlwaysDeclines", func(t *testing.T) {
		api := NewStripeAPI("acct@example.com", FailRateOpt(1))
		res, err := api.Charge(100)
		require.NoError(t, err)
		require.Equal(t, map[string]string{"status": "failed"}, res)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		_, err := NewStripeAPI("").Charge(-1)
		require.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("NilClient", func(t *testing.T) {
		var api *StripeAPI
		_, err := api.Charge(100)
		require.ErrorIs(t, err, ErrNilClient)
	})

	t.Run("SeededDeclinesAreReproducible", func(t *testing.T) {
		a := NewStripeAPI("", FailRateOpt(0.5), SeedOpt(42))
		b := NewStripeAPI("", FailRateOpt(0.5), SeedOpt(42))
		for range 20 {
			ra, _ := a.Charge(1)
			rb, _ := b.Charge(1)
			require.Equal(t, ra["status"], rb["status"])
		}
	})
}

func TestPayPalClient(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cl := NewPayPalClient("merchant@example.com")
		ok, total, err := cl.MakePayment(12.34)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 12.34, total)
		require.Equal(t, "merchant@example.com", cl.MerchantEmail())
	})

	t.Run("AlwaysDeclines", func(t *testing.T) {
		ok, total, err := NewPayPalClient("", FailRateOpt(2)).MakePayment(12.34)
		require.NoError(t, err)
		require.False(t, ok)
		require.Zero(t, total)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		_, _, err := NewPayPalClient("").MakePayment(-0.01)
		require.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("NilClient", func(t *testing.T) {
		var cl *PayPalClient
		_, _, err := cl.MakePayment(1)
		require.ErrorIs(t, err, ErrNilClient)
	})

	t.Run("ConcurrentUse", func(t *testing.T) {
		cl := NewPayPalClient("", FailRateOpt(0.3))
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					_, _, _ = cl.MakePayment(1)
				}
			}()
		}
		wg.Wait()
	})
}
