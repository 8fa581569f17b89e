package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	offerErrors "foamparty/internal/offer/errors"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 2 * time.Second

type redisOfferRepository struct {
	rdb *redis.Client
}

func NewRedisOfferRepository(rdb *redis.Client) OfferRepository {
	return &redisOfferRepository{rdb: rdb}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultTimeout)
}

func (r *redisOfferRepository) StartTimer(ctx context.Context, visitorID string, endsAt time.Time) (time.Time, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	key := timerKey(visitorID)
	created, err := r.rdb.SetNX(ctx, key, strconv.FormatInt(endsAt.UnixMilli(), 10), 0).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("start offer timer: %w", err)
	}
	if created {
		return time.UnixMilli(endsAt.UnixMilli()), nil
	}

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("read offer timer: %w", err)
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", offerErrors.ErrCorruptTimer, raw)
	}
	return time.UnixMilli(ms), nil
}

func (r *redisOfferRepository) IsExpired(ctx context.Context, visitorID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	val, err := r.rdb.Get(ctx, expiredKey(visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read offer expired flag: %w", err)
	}
	return val == "true", nil
}

func (r *redisOfferRepository) MarkExpired(ctx context.Context, visitorID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.rdb.Set(ctx, expiredKey(visitorID), "true", 0).Err(); err != nil {
		return fmt.Errorf("set offer expired flag: %w", err)
	}
	return nil
}

func (r *redisOfferRepository) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}
