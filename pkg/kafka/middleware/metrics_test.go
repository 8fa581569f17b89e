package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"foamparty/pkg/kafka"
	"foamparty/pkg/logger"
)

func TestMetrics_ProducerMiddleware(t *testing.T) {
	m := NewMetrics()
	mw := m.ProducerMiddleware()
	msg := kafka.Message{Key: "k"}

	_ = mw(context.Background(), msg, func(ctx context.Context, msg kafka.Message) error { return nil })
	_ = mw(context.Background(), msg, func(ctx context.Context, msg kafka.Message) error { return errors.New("broker down") })

	if got := m.MessagesPublished.Load(); got != 1 {
		t.Errorf("published = %d, want 1", got)
	}
	if got := m.MessagesPublishedFailed.Load(); got != 1 {
		t.Errorf("published failed = %d, want 1", got)
	}
	if m.PublishDurationTotal.Load() < 0 {
		t.Error("duration should not be negative")
	}
}

func TestMetrics_ConsumerMiddleware(t *testing.T) {
	m := NewMetrics()
	mw := m.ConsumerMiddleware()

	err := mw(context.Background(), kafka.Message{}, func(ctx context.Context, msg kafka.Message) error {
		return errors.New("sms failed")
	})
	if err == nil {
		t.Fatal("middleware must pass the handler error through")
	}

	if got := m.MessagesConsumedFailed.Load(); got != 1 {
		t.Errorf("consumed failed = %d, want 1", got)
	}
	if m.AvgPublishDuration() != 0 {
		t.Error("no publishes recorded, average should be zero")
	}
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	log := logger.Discard()
	wantErr := errors.New("boom")

	err := LoggingProducerMiddleware(log)(context.Background(), kafka.Message{}, func(ctx context.Context, msg kafka.Message) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("producer middleware returned %v", err)
	}

	err = LoggingConsumerMiddleware(log)(context.Background(), kafka.Message{Headers: map[string]string{}}, func(ctx context.Context, msg kafka.Message) error {
		return nil
	})
	if err != nil {
		t.Errorf("consumer middleware returned %v", err)
	}
}
