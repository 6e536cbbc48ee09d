package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CHECKOUT"

const (
	logLevelFlag        = "log"
	logLevelFlagDefault = slog.LevelInfo

	providerFlag        = "provider"
	providerFlagDefault = "stripe"

	amountFlag = "amount"

	genTickFlag    = "gen-tick"
	genTickDefault = 3 * time.Second

	metricsAddrFlag        = "metrics-addr"
	metricsAddrFlagDefault = ":9090"

	stripeEmailFlag         = "stripe-email"
	stripeEmailDefault      = "payments@shop.example"
	stripeKeyFlag           = "stripe-key"
	stripePaymentMethodFlag = "stripe-payment-method"
	stripePaymentMethodDef  = "pm_card_visa"
	stripeFailRateFlag      = "stripe-fail-rate"

	paypalEmailFlag    = "paypal-email"
	paypalEmailDefault = "merchant@shop.example"
	paypalFailRateFlag = "paypal-fail-rate"

	brokersFlag        = "brokers"
	topicFlag          = "topic"
	topicDefault       = "checkout-confirmations"
	groupFlag          = "group"
	groupDefault       = "checkout-archiver"
	schemaRegistryFlag = "schema-registry"
	caRootFlag         = "ca-root"
	brokerUserFlag     = "broker-user"
	brokerPassFlag     = "broker-pass"

	hdfsAddrFlag    = "hdfs-addr"
	hdfsUserFlag    = "hdfs-user"
	hdfsUserDefault = "hadoop"
	hdfsDirFlag     = "hdfs-dir"
	hdfsDirDefault  = "/checkout"
)

type Config struct {
	LogLevel        slog.Level
	Provider        string
	Amount          float64
	CheckoutGenTick time.Duration
	MetricsAddr     string
	Stripe          StripeConfig
	PayPal          PayPalConfig
	Broker          BrokerConfig
	HDFS            HDFSConfig
}

type StripeConfig struct {
	AccountEmail  string
	SecretKey     string
	PaymentMethod string
	FailRate      float64
}

// Sandbox reports whether no live Stripe credentials are configured.
func (c StripeConfig) Sandbox() bool {
	return c.SecretKey == ""
}

type PayPalConfig struct {
	MerchantEmail string
	FailRate      float64
}

type BrokerConfig struct {
	SeedBrokers        []string
	Topic              string
	ConsumerGroup      string
	SchemaRegistryURLs []string
	CARootCert         string
	User               string
	Pass               string
}

// Enabled reports whether the confirmation audit trail is configured.
func (c BrokerConfig) Enabled() bool {
	return len(c.SeedBrokers) != 0 && len(c.SchemaRegistryURLs) != 0
}

type HDFSConfig struct {
	Addresses []string
	User      string
	Dir       string
}

func (c HDFSConfig) Enabled() bool {
	return len(c.Addresses) != 0
}

func Load() Config {
	return load(os.Args[0], os.Args[1:], pflag.ExitOnError)
}

func load(name string, args []string, onErr pflag.ErrorHandling) Config {
	v := viper.New()
	cmdLine := initArgs(name, onErr)
	_ = cmdLine.Parse(args)
	_ = v.BindPFlags(cmdLine)
	initEnv(v, cmdLine)

	return Config{
		LogLevel:        slog.Level(v.GetInt(logLevelFlag)),
		Provider:        v.GetString(providerFlag),
		Amount:          v.GetFloat64(amountFlag),
		CheckoutGenTick: v.GetDuration(genTickFlag),
		MetricsAddr:     v.GetString(metricsAddrFlag),
		Stripe: StripeConfig{
			AccountEmail:  v.GetString(stripeEmailFlag),
			SecretKey:     v.GetString(stripeKeyFlag),
			PaymentMethod: v.GetString(stripePaymentMethodFlag),
			FailRate:      v.GetFloat64(stripeFailRateFlag),
		},
		PayPal: PayPalConfig{
			MerchantEmail: v.GetString(paypalEmailFlag),
			FailRate:      v.GetFloat64(paypalFailRateFlag),
		},
		Broker: BrokerConfig{
			SeedBrokers:        getList(v, brokersFlag),
			Topic:              v.GetString(topicFlag),
			ConsumerGroup:      v.GetString(groupFlag),
			SchemaRegistryURLs: getList(v, schemaRegistryFlag),
			CARootCert:         v.GetString(caRootFlag),
			User:               v.GetString(brokerUserFlag),
			Pass:               v.GetString(brokerPassFlag),
		},
		HDFS: HDFSConfig{
			Addresses: getList(v, hdfsAddrFlag),
			User:      v.GetString(hdfsUserFlag),
			Dir:       v.GetString(hdfsDirFlag),
		},
	}
}

func initArgs(name string, onErr pflag.ErrorHandling) *pflag.FlagSet {
	cmdLine := pflag.NewFlagSet(name, onErr)

	cmdLine.Int(logLevelFlag, int(logLevelFlagDefault), "log level (default \"INFO\")")
	cmdLine.String(providerFlag, providerFlagDefault, "payment provider: stripe or paypal")
	cmdLine.Float64(amountFlag, 0, "amount to pay in EUR")
	cmdLine.Duration(genTickFlag, genTickDefault, "checkout simulator tick duration")
	cmdLine.String(metricsAddrFlag, metricsAddrFlagDefault, "prometheus metrics listen address")

	cmdLine.String(stripeEmailFlag, stripeEmailDefault, "stripe account email")
	cmdLine.String(stripeKeyFlag, "", "stripe secret key, sandbox client is used when empty")
	cmdLine.String(stripePaymentMethodFlag, stripePaymentMethodDef, "stripe payment method to confirm with")
	cmdLine.Float64(stripeFailRateFlag, 0, "share of declined charges in sandbox mode")

	cmdLine.String(paypalEmailFlag, paypalEmailDefault, "paypal merchant email")
	cmdLine.Float64(paypalFailRateFlag, 0, "share of declined payments in sandbox mode")

	cmdLine.StringSlice(brokersFlag, nil, "kafka seed brokers")
	cmdLine.String(topicFlag, topicDefault, "confirmations topic")
	cmdLine.String(groupFlag, groupDefault, "archiver consumer group")
	cmdLine.StringSlice(schemaRegistryFlag, nil, "schema registry urls")
	cmdLine.String(caRootFlag, "", "CA root certificate path, plaintext when empty")
	cmdLine.String(brokerUserFlag, "", "kafka SASL user")
	cmdLine.String(brokerPassFlag, "", "kafka SASL password")

	cmdLine.StringSlice(hdfsAddrFlag, nil, "hdfs namenode addresses")
	cmdLine.String(hdfsUserFlag, hdfsUserDefault, "hdfs user")
	cmdLine.String(hdfsDirFlag, hdfsDirDefault, "hdfs archive directory")

	return cmdLine
}

func initEnv(v *viper.Viper, cmdLine *pflag.FlagSet) {
	cmdLine.VisitAll(func(f *pflag.Flag) {
		_ = v.BindEnv(f.Name, getEnvVar(f.Name))
	})
}

func getEnvVar(input string) string {
	res := []string{envPrefix}
	for s := range strings.SplitSeq(input, "-") {
		res = append(res, strings.ToUpper(s))
	}
	return strings.Join(res, "_")
}

// getList accepts both repeated flags and comma separated env values.
func getList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for s := range strings.SplitSeq(item, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
