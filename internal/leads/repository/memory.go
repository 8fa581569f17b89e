package repository

import (
	"context"
	"sync"

	"foamparty/pkg/model"
)

type memoryLeadRepository struct {
	mu    sync.RWMutex
	leads []model.BookingRequest
}

// NewMemoryLeadRepository keeps leads for the life of the process only.
func NewMemoryLeadRepository() LeadRepository {
	return &memoryLeadRepository{}
}

func (r *memoryLeadRepository) Append(ctx context.Context, lead model.BookingRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.leads = append(r.leads, lead)
	r.mu.Unlock()
	return nil
}

func (r *memoryLeadRepository) List(ctx context.Context, limit int, offset int64) ([]model.BookingRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.leads, limit, offset), int64(len(r.leads)), nil
}

func (r *memoryLeadRepository) Ping(ctx context.Context) error {
	return nil
}
