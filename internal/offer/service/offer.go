package service

import (
	"context"
	"fmt"
	"time"

	offerErrors "foamparty/internal/offer/errors"
	"foamparty/internal/offer/repository"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OfferService interface {
	// Status starts the visitor's countdown on first use and reports what is
	// left of it.
	Status(ctx context.Context, visitorID string) (*model.OfferStatus, error)
	NewVisitor(ctx context.Context) (*model.OfferStatus, error)
}

type offerService struct {
	repo     repository.OfferRepository
	duration time.Duration
	now      func() time.Time
	validate *validator.Validate
	log      *logger.Logger
}

func NewOfferService(repo repository.OfferRepository, duration time.Duration, now func() time.Time, log *logger.Logger) OfferService {
	if now == nil {
		now = time.Now
	}
	return &offerService{
		repo:     repo,
		duration: duration,
		now:      now,
		validate: validator.New(),
		log:      log,
	}
}

func (s *offerService) NewVisitor(ctx context.Context) (*model.OfferStatus, error) {
	return s.Status(ctx, uuid.NewString())
}

func (s *offerService) Status(ctx context.Context, visitorID string) (*model.OfferStatus, error) {
	if err := s.validate.Var(visitorID, "required,uuid"); err != nil {
		return nil, offerErrors.ErrInvalidVisitorID
	}

	expired, err := s.repo.IsExpired(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("check offer for visitor %s: %w", visitorID, err)
	}
	if expired {
		return expiredStatus(visitorID), nil
	}

	now := s.now()
	endsAt, err := s.repo.StartTimer(ctx, visitorID, now.Add(s.duration))
	if err != nil {
		return nil, fmt.Errorf("start offer for visitor %s: %w", visitorID, err)
	}

	remaining := endsAt.Sub(now)
	if remaining <= 0 {
		if err := s.repo.MarkExpired(ctx, visitorID); err != nil {
			s.log.Warn("failed to persist offer expiry", "visitor_id", visitorID, "error", err)
		}
		return expiredStatus(visitorID), nil
	}

	endsAt = endsAt.UTC()
	return &model.OfferStatus{
		VisitorID: visitorID,
		Active:    true,
		Remaining: remaining,
		Display:   FormatRemaining(remaining),
		EndsAt:    &endsAt,
	}, nil
}

func expiredStatus(visitorID string) *model.OfferStatus {
	return &model.OfferStatus{
		VisitorID: visitorID,
		Expired:   true,
		Display:   FormatRemaining(0),
	}
}

// FormatRemaining renders d as MM:SS, rounding down to whole seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	seconds := int64((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
