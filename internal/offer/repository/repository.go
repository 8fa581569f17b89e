package repository

import (
	"context"
	"time"
)

const (
	TimerKeyPrefix   = "foamPartyOfferTimer"
	ExpiredKeyPrefix = "foamPartyOfferExpired"
)

// OfferRepository is the per-visitor scratch pad behind the offer countdown.
type OfferRepository interface {
	// StartTimer stores endsAt unless the visitor already has a timer, and
	// returns whichever end time is stored.
	StartTimer(ctx context.Context, visitorID string, endsAt time.Time) (time.Time, error)
	IsExpired(ctx context.Context, visitorID string) (bool, error)
	MarkExpired(ctx context.Context, visitorID string) error
	Ping(ctx context.Context) error
}

func timerKey(visitorID string) string {
	return TimerKeyPrefix + ":" + visitorID
}

func expiredKey(visitorID string) string {
	return ExpiredKeyPrefix + ":" + visitorID
}
