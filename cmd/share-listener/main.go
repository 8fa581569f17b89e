package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"foamparty/internal/leads/listener"
	"foamparty/internal/leads/notify"
	"foamparty/pkg/config"
	"foamparty/pkg/kafka"
	kafka_config "foamparty/pkg/kafka/config"
	kafka_middleware "foamparty/pkg/kafka/middleware"
)

const ServiceName = "share-listener"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Share listener")

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	shareListener := listener.NewShareListener(initTexter(cfg), cfg.OperatorPhone, cfg.Log.Component("listener"))

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.ShareTopic,
		kafkaCfg.ConsumerGroupID,
		kafkaCfg.DLQTopic,
		shareListener.Handle,
		cfg.Log.Component("kafka"),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create share consumer", "error", err)
	}

	consumerMetrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(consumerMetrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming share events", "topic", cfg.ShareTopic, "group_id", kafkaCfg.ConsumerGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Share consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutdown signal received, closing consumer")
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close share consumer", "error", err)
	}
	consumerMetrics.Log(cfg.Log)
	cfg.Log.Info("Share listener stopped")
}

// initTexter returns nil when SMS is disabled so events are only logged.
func initTexter(cfg *config.Config) listener.Texter {
	if !cfg.SMSEnabled {
		cfg.Log.Info("SMS disabled, share events will only be logged")
		return nil
	}
	return notify.NewSMSSender(notify.TwilioConfig{
		BaseURL:    cfg.TwilioBaseURL,
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
		Timeout:    cfg.RelayTimeout,
	}, cfg.Log.Component("sms"))
}
