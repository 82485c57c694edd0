package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
	"github.com/RyuuShuvi/eshop/internal/checkout/ports"
)

// ProductRepository provides an in-memory catalog useful for local
// development and tests.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewProductRepository constructs a new in-memory catalog.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*domain.Product)}
}

// Create stores a new product. Names are unique.
func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.Name()]; ok {
		return ports.ErrProductExists
	}
	r.products[product.Name()] = product
	return nil
}

// GetByName fetches a single product by name. The stored instance is
// returned so cart submissions mutate the shared stock.
func (r *ProductRepository) GetByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[name]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return product, nil
}

// List returns all products sorted by name.
func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, product)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})

	return result, nil
}

// UpdateAvailability persists a product's post-purchase stock level. The
// in-memory instance already carries the mutation, so only existence is
// checked here.
func (r *ProductRepository) UpdateAvailability(_ context.Context, name string, _ int) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.products[name]; !ok {
		return ports.ErrProductNotFound
	}
	return nil
}
