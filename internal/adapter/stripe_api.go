package adapter

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

var _ StripeClient = (*StripeAPIClient)(nil)

type StripeAPIOpt func(*stripeAPIOpts) error

func StripeAPIKeyOpt(key string) StripeAPIOpt {
	return func(opts *stripeAPIOpts) error {
		if key != "" {
			opts.key = key
			return nil
		}
		return errors.New("stripe api key is empty")
	}
}

func StripeAccountEmailOpt(email string) StripeAPIOpt {
	return func(opts *stripeAPIOpts) error {
		opts.email = email
		return nil
	}
}

func StripePaymentMethodOpt(pm string) StripeAPIOpt {
	return func(opts *stripeAPIOpts) error {
		if pm != "" {
			opts.paymentMethod = pm
			return nil
		}
		return errors.New("stripe payment method is empty")
	}
}

// StripeBackendURLOpt points the client at a non-default API host.
func StripeBackendURLOpt(url string) StripeAPIOpt {
	return func(opts *stripeAPIOpts) error {
		if url != "" {
			opts.backendURL = url
			return nil
		}
		return errors.New("stripe backend url is empty")
	}
}

type stripeAPIOpts struct {
	key           string
	email         string
	paymentMethod string
	backendURL    string
}

// StripeAPIClient charges through the Stripe PaymentIntents API and reports
// the outcome in the status map shape StripeAdapter expects.
type StripeAPIClient struct {
	api           *client.API
	email         string
	paymentMethod string
}

func NewStripeAPIClient(opts ...StripeAPIOpt) *StripeAPIClient {
	const op = "NewStripeAPIClient"

	options := stripeAPIOpts{paymentMethod: "pm_card_visa"}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(fmt.Errorf("%s: %w", op, err)) // develop mistake
		}
	}
	if options.key == "" {
		panic(fmt.Errorf("%s: stripe api key not set", op))
	}

	backends := &stripe.Backends{
		API:     newStripeBackend(stripe.APIBackend, options.backendURL),
		Connect: newStripeBackend(stripe.ConnectBackend, options.backendURL),
		Uploads: newStripeBackend(stripe.UploadsBackend, options.backendURL),
	}

	return &StripeAPIClient{
		api:           client.New(options.key, backends),
		email:         options.email,
		paymentMethod: options.paymentMethod,
	}
}

// newStripeBackend disables the SDK network retries: a confirmed payment
// intent must not be created twice.
func newStripeBackend(t stripe.SupportedBackend, url string) stripe.Backend {
	cfg := &stripe.BackendConfig{MaxNetworkRetries: stripe.Int64(0)}
	if url != "" {
		cfg.URL = stripe.String(url)
		cfg.LeveledLogger = &stripe.LeveledLogger{Level: stripe.LevelNull}
	}
	return stripe.GetBackendWithConfig(t, cfg)
}

func (c *StripeAPIClient) AccountEmail() string {
	return c.email
}

// Charge creates and confirms a EUR payment intent. Card declines are
// reported as status "failed"; every other API error is returned as is.
func (c *StripeAPIClient) Charge(amountCents int64) (map[string]string, error) {
	if c == nil {
		return nil, errors.New("StripeAPIClient.Charge: client is nil")
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(stripe.CurrencyEUR)),
		PaymentMethod:      stripe.String(c.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return map[string]string{
				"status":       "failed",
				"decline_code": string(stripeErr.DeclineCode),
			}, nil
		}
		return nil, err
	}

	status := string(pi.Status)
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		status = stripeStatusSuccess
	}
	return map[string]string{
		"status": status,
		"id":     pi.ID,
	}, nil
}
