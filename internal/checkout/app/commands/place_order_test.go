package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RyuuShuvi/eshop/internal/checkout/app/commands"
	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
	"github.com/RyuuShuvi/eshop/internal/checkout/ports"
)

type mockProductRepository struct {
	products             map[string]*domain.Product
	updatedAvailability  map[string]int
	updateAvailabilityFn func(ctx context.Context, name string, availableAmount int) error
}

func newMockProductRepository(t *testing.T, products ...*domain.Product) *mockProductRepository {
	t.Helper()
	repo := &mockProductRepository{
		products:            make(map[string]*domain.Product),
		updatedAvailability: make(map[string]int),
	}
	for _, p := range products {
		repo.products[p.Name()] = p
	}
	return repo
}

func (m *mockProductRepository) Create(_ context.Context, product *domain.Product) error {
	m.products[product.Name()] = product
	return nil
}

func (m *mockProductRepository) GetByName(_ context.Context, name string) (*domain.Product, error) {
	product, ok := m.products[name]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) UpdateAvailability(ctx context.Context, name string, availableAmount int) error {
	if m.updateAvailabilityFn != nil {
		return m.updateAvailabilityFn(ctx, name, availableAmount)
	}
	m.updatedAvailability[name] = availableAmount
	return nil
}

type mockShippingService struct {
	createShippingFn func(ctx context.Context, shippingType string, productIDs []string, orderID string, dueDate time.Time) (string, error)
}

func (m *mockShippingService) CreateShipping(ctx context.Context, shippingType string, productIDs []string, orderID string, dueDate time.Time) (string, error) {
	if m.createShippingFn != nil {
		return m.createShippingFn(ctx, shippingType, productIDs, orderID, dueDate)
	}
	return "ship-1", nil
}

func (m *mockShippingService) CheckStatus(_ context.Context, _ string) (string, error) {
	return "created", nil
}

func (m *mockShippingService) ListAvailableShippingTypes() []string {
	return []string{"Nova Poshta"}
}

func mustProduct(t *testing.T, name string, price float64, available int) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, price, available)
	if err != nil {
		t.Fatalf("NewProduct(%q) failed: %v", name, err)
	}
	return product
}

func TestPlaceOrderCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("places an order and persists the new stock", func(t *testing.T) {
		widget := mustProduct(t, "Widget", 10.0, 5)
		repo := newMockProductRepository(t, widget)

		var gotIDs []string
		shipping := &mockShippingService{
			createShippingFn: func(_ context.Context, _ string, productIDs []string, _ string, _ time.Time) (string, error) {
				gotIDs = productIDs
				return "ship-1", nil
			},
		}

		handler := commands.NewPlaceOrderCommandHandler(repo, shipping, domain.SubmitBeforeShipping)
		result, err := handler.Handle(ctx, commands.PlaceOrderCommand{
			Items:        []commands.OrderItem{{ProductName: "Widget", Quantity: 3}},
			ShippingType: "Nova Poshta",
		})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.ShippingID != "ship-1" {
			t.Errorf("expected shipping id ship-1, got %q", result.ShippingID)
		}
		if result.OrderID == "" {
			t.Error("expected a generated order id")
		}
		if result.Total != 30.0 {
			t.Errorf("expected total 30.0, got %v", result.Total)
		}
		if len(gotIDs) != 1 || gotIDs[0] != "Widget" {
			t.Errorf("expected product ids [Widget], got %v", gotIDs)
		}
		if got := repo.updatedAvailability["Widget"]; got != 2 {
			t.Errorf("expected persisted availability 2, got %d", got)
		}
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		repo := newMockProductRepository(t)
		handler := commands.NewPlaceOrderCommandHandler(repo, &mockShippingService{}, domain.SubmitBeforeShipping)

		_, err := handler.Handle(ctx, commands.PlaceOrderCommand{
			Items:        []commands.OrderItem{{ProductName: "Missing", Quantity: 1}},
			ShippingType: "Nova Poshta",
		})

		if !errors.Is(err, ports.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("rejects insufficient stock before touching shipping", func(t *testing.T) {
		widget := mustProduct(t, "Widget", 10.0, 2)
		repo := newMockProductRepository(t, widget)

		shipping := &mockShippingService{
			createShippingFn: func(_ context.Context, _ string, _ []string, _ string, _ time.Time) (string, error) {
				t.Fatal("shipping must not be called when the cart rejects a line")
				return "", nil
			},
		}

		handler := commands.NewPlaceOrderCommandHandler(repo, shipping, domain.SubmitBeforeShipping)
		_, err := handler.Handle(ctx, commands.PlaceOrderCommand{
			Items:        []commands.OrderItem{{ProductName: "Widget", Quantity: 3}},
			ShippingType: "Nova Poshta",
		})

		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if widget.AvailableAmount() != 2 {
			t.Errorf("expected stock untouched, got %d", widget.AvailableAmount())
		}
	})

	t.Run("persists decremented stock even when shipping fails", func(t *testing.T) {
		widget := mustProduct(t, "Widget", 10.0, 5)
		repo := newMockProductRepository(t, widget)

		shippingErr := errors.New("Shipping type is not available")
		shipping := &mockShippingService{
			createShippingFn: func(_ context.Context, _ string, _ []string, _ string, _ time.Time) (string, error) {
				return "", shippingErr
			},
		}

		handler := commands.NewPlaceOrderCommandHandler(repo, shipping, domain.SubmitBeforeShipping)
		_, err := handler.Handle(ctx, commands.PlaceOrderCommand{
			Items:        []commands.OrderItem{{ProductName: "Widget", Quantity: 3}},
			ShippingType: "Carrier Pigeon",
		})

		if !errors.Is(err, shippingErr) {
			t.Fatalf("expected the shipping error verbatim, got %v", err)
		}
		if widget.AvailableAmount() != 2 {
			t.Errorf("expected stock decremented to 2, got %d", widget.AvailableAmount())
		}
		if got := repo.updatedAvailability["Widget"]; got != 2 {
			t.Errorf("expected persisted availability 2, got %d", got)
		}
	})

	t.Run("shipping-first policy keeps stock when shipping fails", func(t *testing.T) {
		widget := mustProduct(t, "Widget", 10.0, 5)
		repo := newMockProductRepository(t, widget)

		shippingErr := errors.New("Shipping type is not available")
		shipping := &mockShippingService{
			createShippingFn: func(_ context.Context, _ string, _ []string, _ string, _ time.Time) (string, error) {
				return "", shippingErr
			},
		}

		handler := commands.NewPlaceOrderCommandHandler(repo, shipping, domain.ShippingBeforeSubmit)
		_, err := handler.Handle(ctx, commands.PlaceOrderCommand{
			Items:        []commands.OrderItem{{ProductName: "Widget", Quantity: 3}},
			ShippingType: "Carrier Pigeon",
		})

		if !errors.Is(err, shippingErr) {
			t.Fatalf("expected the shipping error verbatim, got %v", err)
		}
		if widget.AvailableAmount() != 5 {
			t.Errorf("expected stock untouched, got %d", widget.AvailableAmount())
		}
		if got := repo.updatedAvailability["Widget"]; got != 5 {
			t.Errorf("expected availability persisted unchanged at 5, got %d", got)
		}
	})

	t.Run("validates the command", func(t *testing.T) {
		repo := newMockProductRepository(t)
		handler := commands.NewPlaceOrderCommandHandler(repo, &mockShippingService{}, domain.SubmitBeforeShipping)

		tests := []struct {
			name string
			cmd  commands.PlaceOrderCommand
			want string
		}{
			{
				name: "missing shipping type",
				cmd: commands.PlaceOrderCommand{
					Items: []commands.OrderItem{{ProductName: "Widget", Quantity: 1}},
				},
				want: "shipping_type is required",
			},
			{
				name: "missing product name",
				cmd: commands.PlaceOrderCommand{
					Items:        []commands.OrderItem{{Quantity: 1}},
					ShippingType: "Nova Poshta",
				},
				want: "item product name is required",
			},
			{
				name: "non-positive quantity",
				cmd: commands.PlaceOrderCommand{
					Items:        []commands.OrderItem{{ProductName: "Widget", Quantity: 0}},
					ShippingType: "Nova Poshta",
				},
				want: "item quantity must be positive",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := handler.Handle(ctx, tt.cmd)
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != tt.want {
					t.Errorf("expected error %q, got %q", tt.want, err.Error())
				}
			})
		}
	})

	t.Run("allows an empty item list", func(t *testing.T) {
		repo := newMockProductRepository(t)

		var gotIDs []string
		called := false
		shipping := &mockShippingService{
			createShippingFn: func(_ context.Context, _ string, productIDs []string, _ string, _ time.Time) (string, error) {
				called = true
				gotIDs = productIDs
				return "ship-1", nil
			},
		}

		handler := commands.NewPlaceOrderCommandHandler(repo, shipping, domain.SubmitBeforeShipping)
		result, err := handler.Handle(ctx, commands.PlaceOrderCommand{ShippingType: "Nova Poshta"})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !called {
			t.Fatal("expected the shipping service to be called")
		}
		if len(gotIDs) != 0 {
			t.Errorf("expected no product ids, got %v", gotIDs)
		}
		if result.Total != 0 {
			t.Errorf("expected total 0, got %v", result.Total)
		}
	})
}
