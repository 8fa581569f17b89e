package repository

import (
	"context"

	"foamparty/pkg/model"
)

// LeadRepository is the best-effort local copy of submitted bookings.
// Records are only ever appended, in submission order.
type LeadRepository interface {
	Append(ctx context.Context, lead model.BookingRequest) error
	List(ctx context.Context, limit int, offset int64) ([]model.BookingRequest, int64, error)
	Ping(ctx context.Context) error
}

func page(leads []model.BookingRequest, limit int, offset int64) []model.BookingRequest {
	total := int64(len(leads))
	if offset >= total {
		return []model.BookingRequest{}
	}
	end := offset + int64(limit)
	if limit <= 0 || end > total {
		end = total
	}
	out := make([]model.BookingRequest, end-offset)
	copy(out, leads[offset:end])
	return out
}
