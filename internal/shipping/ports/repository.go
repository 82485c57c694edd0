package ports

import (
	"context"
	"errors"

	"github.com/RyuuShuvi/eshop/internal/shipping/domain"
)

// Repository is the durable record store behind the shipping service.
type Repository interface {
	Create(ctx context.Context, shipping domain.Shipping) error
	Get(ctx context.Context, id string) (*domain.Shipping, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

var (
	// ErrNotFound is returned when the requested shipping does not exist.
	ErrNotFound = errors.New("shipping not found")
)
