package repository

import (
	"context"
	"sync"
	"time"
)

type memoryOfferRepository struct {
	mu      sync.Mutex
	timers  map[string]time.Time
	expired map[string]bool
}

func NewMemoryOfferRepository() OfferRepository {
	return &memoryOfferRepository{
		timers:  make(map[string]time.Time),
		expired: make(map[string]bool),
	}
}

func (r *memoryOfferRepository) StartTimer(ctx context.Context, visitorID string, endsAt time.Time) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := timerKey(visitorID)
	if existing, ok := r.timers[key]; ok {
		return existing, nil
	}
	r.timers[key] = endsAt.Truncate(time.Millisecond)
	return r.timers[key], nil
}

func (r *memoryOfferRepository) IsExpired(ctx context.Context, visitorID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expired[expiredKey(visitorID)], nil
}

func (r *memoryOfferRepository) MarkExpired(ctx context.Context, visitorID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired[expiredKey(visitorID)] = true
	return nil
}

func (r *memoryOfferRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
