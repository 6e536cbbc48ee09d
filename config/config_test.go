//go:build !integration

package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := load("checkout", nil, pflag.ContinueOnError)

		require.Equal(t, slog.LevelInfo, cfg.LogLevel)
		require.Equal(t, "stripe", cfg.Provider)
		require.Equal(t, 3*time.Second, cfg.CheckoutGenTick)
		require.Equal(t, "payments@shop.example", cfg.Stripe.AccountEmail)
		require.True(t, cfg.Stripe.Sandbox())
		require.Equal(t, "merchant@shop.example", cfg.PayPal.MerchantEmail)
		require.Equal(t, "checkout-confirmations", cfg.Broker.Topic)
		require.False(t, cfg.Broker.Enabled())
		require.False(t, cfg.HDFS.Enabled())
		require.Equal(t, "/checkout", cfg.HDFS.Dir)
	})

	t.Run("Flags", func(t *testing.T) {
		cfg := load("checkout", []string{
			"--provider", "paypal",
			"--amount", "12.34",
			"--log", "-4",
			"--brokers", "b1:9092",
			"--brokers", "b2:9092",
			"--schema-registry", "http://sr:8081",
			"--stripe-key", "sk_test_123",
		}, pflag.ContinueOnError)

		require.Equal(t, "paypal", cfg.Provider)
		require.Equal(t, 12.34, cfg.Amount)
		require.Equal(t, slog.LevelDebug, cfg.LogLevel)
		require.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Broker.SeedBrokers)
		require.True(t, cfg.Broker.Enabled())
		require.False(t, cfg.Stripe.Sandbox())
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("CHECKOUT_PAYPAL_EMAIL", "ops@shop.example")
		t.Setenv("CHECKOUT_GEN_TICK", "250ms")
		t.Setenv("CHECKOUT_HDFS_ADDR", "nn1:8020, nn2:8020")

		cfg := load("checkout", nil, pflag.ContinueOnError)
		require.Equal(t, "ops@shop.example", cfg.PayPal.MerchantEmail)
		require.Equal(t, 250*time.Millisecond, cfg.CheckoutGenTick)
		require.Equal(t, []string{"nn1:8020", "nn2:8020"}, cfg.HDFS.Addresses)
	})

	t.Run("FlagOverridesEnv", func(t *testing.T) {
		t.Setenv("CHECKOUT_PROVIDER", "paypal")
		cfg := load("checkout", []string{"--provider", "stripe"}, pflag.ContinueOnError)
		require.Equal(t, "stripe", cfg.Provider)
	})
}

func TestGetEnvVar(t *testing.T) {
	require.Equal(t, "CHECKOUT_STRIPE_FAIL_RATE", getEnvVar("stripe-fail-rate"))
	require.Equal(t, "CHECKOUT_LOG", getEnvVar("log"))
}
