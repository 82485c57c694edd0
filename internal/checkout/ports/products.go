package ports

import (
	"context"
	"errors"

	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
)

// ProductRepository exposes the catalog operations required by the
// application layer. Products are identified by name.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	UpdateAvailability(ctx context.Context, name string, availableAmount int) error
}

var (
	// ErrProductNotFound is returned when the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductExists is returned when creating a product whose name is taken.
	ErrProductExists = errors.New("product already exists")
)
