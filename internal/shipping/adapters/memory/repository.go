package memory

import (
	"context"
	"sync"
	"time"

	"github.com/RyuuShuvi/eshop/internal/shipping/domain"
	"github.com/RyuuShuvi/eshop/internal/shipping/ports"
)

// Repository provides an in-memory record store useful for local
// development and tests.
type Repository struct {
	mu        sync.RWMutex
	shippings map[string]domain.Shipping
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{shippings: make(map[string]domain.Shipping)}
}

// Create stores a new shipping record.
func (r *Repository) Create(_ context.Context, shipping domain.Shipping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shippings[shipping.ID] = shipping
	return nil
}

// Get fetches a single shipping by identifier.
func (r *Repository) Get(_ context.Context, id string) (*domain.Shipping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shipping, ok := r.shippings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := shipping
	return &copy, nil
}

// UpdateStatus sets the status and updatedAt timestamp for a shipping.
func (r *Repository) UpdateStatus(_ context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shipping, ok := r.shippings[id]
	if !ok {
		return ports.ErrNotFound
	}

	shipping.Status = status
	shipping.UpdatedAt = time.Now().UTC()
	r.shippings[id] = shipping
	return nil
}
