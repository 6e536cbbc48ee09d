package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/colinmarc/hdfs/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/niksmo/checkout-adapters/config"
	"github.com/niksmo/checkout-adapters/internal/adapter"
	"github.com/niksmo/checkout-adapters/internal/adapter/kafka"
	"github.com/niksmo/checkout-adapters/internal/app"
	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/service"
	"github.com/niksmo/checkout-adapters/internal/metrics"
	"github.com/niksmo/checkout-adapters/pkg/dialer"
	"github.com/niksmo/checkout-adapters/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/scram"
	"github.com/twmb/franz-go/pkg/sr"
)

func main() {
	sigCtx, cancel := signalContext()
	defer cancel()

	cfg := config.Load()

	app.InitLogger(cfg.LogLevel)
	slog.Info("application is started")

	opts := []service.Option{
		service.RecorderOpt(metrics.NewCheckout(prometheus.DefaultRegisterer)),
	}

	var (
		producerCl *kgo.Client
		consumerCl *kgo.Client
	)
	if cfg.Broker.Enabled() {
		producerCl = createProducerClient(cfg)
		serdeSR := createSerdeSR(sigCtx, cfg)

		producer := kafka.NewProducer(
			kafka.ProducerClientOpt(producerCl),
			kafka.ProducerEncodeFnOpt(serdeSR.Encode),
		)
		opts = append(opts, service.ProducerOpt(producer))

		if cfg.HDFS.Enabled() {
			archive := createHDFSArchive(cfg)
			defer archive.Close(func(err error) {
				slog.Error("failed to close hdfs client", "err", err)
			})

			consumerCl = createConsumerClient(cfg)
			consumer := kafka.NewConsumer(
				kafka.ConsumerClientOpt(consumerCl),
				kafka.ConsumerReceiverOpt(service.NewArchiver(archive)),
				kafka.ConsumerDecodeFnOpt(serdeSR.Decode),
			)
			go consumer.Run(sigCtx)
		}
	}

	checkout := service.New(app.NewProcessors(cfg), opts...)

	simulator := adapter.NewCheckoutSimulator(
		checkout, cfg.CheckoutGenTick, domain.Stripe, domain.PayPal,
	)
	go simulator.Run(sigCtx)

	metricsSrv := runMetricsServer(cfg.MetricsAddr)

	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 5*time.Second,
	)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown metrics server", "err", err)
	}

	if consumerCl != nil {
		consumerCl.Close()
	}
	if producerCl != nil {
		producerCl.Close()
	}
	slog.Info("application is stopped")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
}

func createProducerClient(cfg config.Config) *kgo.Client {
	const op = "Main.createProducerClient"

	opts := append(
		baseKafkaOpts(cfg),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(cfg.Broker.Topic),
	)

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		die(op, err)
	}
	return cl
}

// createConsumerClient joins the archiver group, so it is only created when
// something polls it.
func createConsumerClient(cfg config.Config) *kgo.Client {
	const op = "Main.createConsumerClient"

	opts := append(
		baseKafkaOpts(cfg),
		kgo.ConsumeTopics(cfg.Broker.Topic),
		kgo.ConsumerGroup(cfg.Broker.ConsumerGroup),
		kgo.DisableAutoCommit(),
	)

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		die(op, err)
	}
	return cl
}

func baseKafkaOpts(cfg config.Config) []kgo.Opt {
	const op = "Main.baseKafkaOpts"

	d, err := dialer.TLS(cfg.Broker.CARootCert)
	if err != nil {
		die(op, err)
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Broker.SeedBrokers...),
		kgo.Dialer(d.DialContext),
	}

	if cfg.Broker.User != "" {
		auth := scram.Auth{
			User: cfg.Broker.User,
			Pass: cfg.Broker.Pass,
		}
		opts = append(opts, kgo.SASL(auth.AsSha512Mechanism()))
	}
	return opts
}

func createSerdeSR(
	ctx context.Context, cfg config.Config,
) *sr.Serde {
	const op = "Main.createSerdeSR"

	tlsConfig, err := dialer.TLSConfig(cfg.Broker.CARootCert)
	if err != nil {
		die(op, err)
	}

	opts := []sr.ClientOpt{sr.URLs(cfg.Broker.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		opts = append(opts, sr.DialTLSConfig(tlsConfig))
	}
	if cfg.Broker.User != "" {
		opts = append(opts, sr.BasicAuth(cfg.Broker.User, cfg.Broker.Pass))
	}

	cl, err := sr.NewClient(opts...)
	if err != nil {
		die(op, err)
	}

	ss, err := cl.CreateSchema(
		ctx, cfg.Broker.Topic+"-value", schema.ConfirmationSchemaV1,
	)
	if err != nil {
		die(op, err)
	}

	serde := new(sr.Serde)
	serde.Register(
		ss.ID,
		schema.ConfirmationV1{},
		sr.EncodeFn(schema.ConfirmationV1AvroEncodeFn()),
		sr.DecodeFn(schema.ConfirmationV1AvroDecodeFn()),
	)
	return serde
}

func createHDFSArchive(cfg config.Config) adapter.HDFSArchive {
	const op = "Main.createHDFSArchive"

	cl, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: cfg.HDFS.Addresses,
		User:      cfg.HDFS.User,
	})
	if err != nil {
		die(op, err)
	}

	return adapter.NewHDFSArchive(
		adapter.HDFSClientOpt(cl),
		adapter.HDFSDirOpt(cfg.HDFS.Dir),
	)
}

func runMetricsServer(addr string) *http.Server {
	const op = "Main.runMetricsServer"

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "op", op, "err", err)
		}
	}()
	return srv
}

func die(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
