package notify

import (
	"context"
	"fmt"

	"foamparty/pkg/kafka"
	"foamparty/pkg/model"
)

const sourceName = "foamparty-leads"

// SharedEvent is the value of a booking.shared record.
type SharedEvent struct {
	Share   ShareData            `json:"share"`
	Booking model.BookingRequest `json:"booking"`
}

type publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaSharer shares leads by publishing them to the share topic, where the
// share listener picks them up.
type KafkaSharer struct {
	producer publisher
}

func NewKafkaSharer(producer publisher) *KafkaSharer {
	return &KafkaSharer{producer: producer}
}

func (s *KafkaSharer) Share(ctx context.Context, lead model.BookingRequest, data ShareData) error {
	key := lead.ID
	if key == "" {
		key = lead.Phone
	}

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(SharedEvent{Share: data, Booking: lead}).
		WithEventType(kafka.EventBookingShared).
		WithSchemaVersion(kafka.SchemaVersionV1).
		WithSource(sourceName).
		WithCorrelationID(lead.ID).
		Build()
	if err != nil {
		return fmt.Errorf("build share event: %w", err)
	}

	if err := s.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish share event: %w", err)
	}
	return nil
}
