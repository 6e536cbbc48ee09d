package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/niksmo/checkout-adapters/config"
	"github.com/niksmo/checkout-adapters/internal/app"
	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	cfg := config.Load()
	app.InitLogger(cfg.LogLevel)

	provider, err := domain.ParseProvider(cfg.Provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	checkout := service.New(app.NewProcessors(cfg))

	c, err := checkout.Pay(ctx, domain.NewPayment(provider, cfg.Amount))
	if err != nil {
		var failed *domain.PaymentFailedError
		if errors.As(err, &failed) {
			fmt.Fprintln(os.Stderr, failed)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	fmt.Println(c.Message)
	return 0
}
