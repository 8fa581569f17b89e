package listener

import (
	"context"

	"foamparty/internal/leads/notify"
	"foamparty/pkg/kafka"
	"foamparty/pkg/logger"
)

type Texter interface {
	Send(ctx context.Context, to, body string) error
}

// ShareListener reacts to booking.shared events by logging them and, when a
// texter is configured, forwarding the share text to the operator phone.
type ShareListener struct {
	texter        Texter
	operatorPhone string
	log           *logger.Logger
}

func NewShareListener(texter Texter, operatorPhone string, log *logger.Logger) *ShareListener {
	return &ShareListener{
		texter:        texter,
		operatorPhone: operatorPhone,
		log:           log,
	}
}

func (l *ShareListener) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != kafka.EventBookingShared {
		l.log.Debug("ignoring event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var event notify.SharedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("decode share event", err)
	}

	l.log.Info("booking shared",
		"event_id", msg.GetEventID(),
		"lead_id", event.Booking.ID,
		"name", event.Booking.Name,
		"date", event.Booking.Date,
		"time", event.Booking.Time,
		"party_size", event.Booking.PartySize,
	)

	if l.texter == nil {
		return nil
	}

	if err := l.texter.Send(ctx, l.operatorPhone, event.Share.Title+"\n"+event.Share.Text); err != nil {
		return kafka.NewTransientError("text operator", err)
	}
	return nil
}
