package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"foamparty/pkg/kafka"
	"foamparty/pkg/logger"
)

// Metrics holds in-process counters for a producer or consumer.
type Metrics struct {
	MessagesPublished       atomic.Int64
	MessagesPublishedFailed atomic.Int64
	PublishDurationTotal    atomic.Int64 // nanoseconds

	MessagesConsumed       atomic.Int64
	MessagesConsumedFailed atomic.Int64
	ConsumeDurationTotal   atomic.Int64 // nanoseconds
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) AvgPublishDuration() time.Duration {
	n := m.MessagesPublished.Load() + m.MessagesPublishedFailed.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.PublishDurationTotal.Load() / n)
}

func (m *Metrics) AvgConsumeDuration() time.Duration {
	n := m.MessagesConsumed.Load() + m.MessagesConsumedFailed.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.ConsumeDurationTotal.Load() / n)
}

func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		m.PublishDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.MessagesPublishedFailed.Add(1)
		} else {
			m.MessagesPublished.Add(1)
		}

		return err
	}
}

func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		m.ConsumeDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.MessagesConsumedFailed.Add(1)
		} else {
			m.MessagesConsumed.Add(1)
		}

		return err
	}
}

// Log writes a snapshot of the counters, typically at shutdown.
func (m *Metrics) Log(log *logger.Logger) {
	log.Info("Kafka metrics",
		"published", m.MessagesPublished.Load(),
		"published_failed", m.MessagesPublishedFailed.Load(),
		"avg_publish_duration", m.AvgPublishDuration(),
		"consumed", m.MessagesConsumed.Load(),
		"consumed_failed", m.MessagesConsumedFailed.Load(),
		"avg_consume_duration", m.AvgConsumeDuration(),
	)
}
