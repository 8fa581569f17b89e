package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testRepositories(t *testing.T) map[string]OfferRepository {
	t.Helper()
	repos := map[string]OfferRepository{
		"memory": NewMemoryOfferRepository(),
	}

	// Redis runs only when a server is provided, as in CI.
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		t.Cleanup(func() { _ = rdb.Close() })
		repos["redis"] = NewRedisOfferRepository(rdb)
	}
	return repos
}

func TestOfferRepository_StartTimerKeepsFirstValue(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			visitor := uuid.NewString()
			first := time.Date(2025, 7, 1, 12, 10, 0, 0, time.UTC)

			got, err := repo.StartTimer(ctx, visitor, first)
			if err != nil {
				t.Fatalf("StartTimer() error: %v", err)
			}
			if !got.Equal(first) {
				t.Errorf("first StartTimer = %s, want %s", got, first)
			}

			got, err = repo.StartTimer(ctx, visitor, first.Add(time.Hour))
			if err != nil {
				t.Fatalf("StartTimer() error: %v", err)
			}
			if !got.Equal(first) {
				t.Errorf("second StartTimer = %s, want original %s", got, first)
			}
		})
	}
}

func TestOfferRepository_ExpiredFlag(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			visitor := uuid.NewString()

			expired, err := repo.IsExpired(ctx, visitor)
			if err != nil || expired {
				t.Fatalf("IsExpired() = %v, %v", expired, err)
			}

			if err := repo.MarkExpired(ctx, visitor); err != nil {
				t.Fatalf("MarkExpired() error: %v", err)
			}

			expired, err = repo.IsExpired(ctx, visitor)
			if err != nil || !expired {
				t.Errorf("IsExpired() after mark = %v, %v", expired, err)
			}

			if err := repo.Ping(ctx); err != nil {
				t.Errorf("Ping() error: %v", err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	if got := timerKey("v1"); got != "foamPartyOfferTimer:v1" {
		t.Errorf("timerKey = %q", got)
	}
	if got := expiredKey("v1"); got != "foamPartyOfferExpired:v1" {
		t.Errorf("expiredKey = %q", got)
	}
}
