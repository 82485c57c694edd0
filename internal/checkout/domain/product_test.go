package domain_test

import (
	"errors"
	"testing"

	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name            string
		productName     string
		price           float64
		availableAmount int
		wantErr         error
	}{
		{"valid product", "Widget", 10.0, 5, nil},
		{"three character name is valid", "abc", 1.0, 0, nil},
		{"zero price", "Widget", 0, 5, domain.ErrPriceNotPositive},
		{"negative price", "Widget", -9.99, 5, domain.ErrPriceNotPositive},
		{"short name", "ab", 10.0, 5, domain.ErrNameTooShort},
		{"short multi-byte name", "ЖК", 10.0, 5, domain.ErrNameTooShort},
		{"three character multi-byte name is valid", "Сік", 10.0, 5, nil},
		{"empty name", "", 10.0, 5, domain.ErrNameTooShort},
		{"negative availability", "Widget", 10.0, -1, domain.ErrNegativeAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := domain.NewProduct(tt.productName, tt.price, tt.availableAmount)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if product != nil {
					t.Errorf("expected nil product, got %+v", product)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if product.Name() != tt.productName {
				t.Errorf("expected name %q, got %q", tt.productName, product.Name())
			}
			if product.Price() != tt.price {
				t.Errorf("expected price %v, got %v", tt.price, product.Price())
			}
			if product.AvailableAmount() != tt.availableAmount {
				t.Errorf("expected availability %d, got %d", tt.availableAmount, product.AvailableAmount())
			}
		})
	}
}

func TestNewProductFromValues(t *testing.T) {
	tests := []struct {
		name            string
		productName     any
		price           any
		availableAmount any
		wantErr         error
	}{
		{"valid values", "Widget", 10.0, 5, nil},
		{"non-string name", 42, 10.0, 5, domain.ErrProductFieldTypes},
		{"non-numeric price", "Widget", "one", 5, domain.ErrProductFieldTypes},
		{"nil price", "Widget", nil, 5, domain.ErrProductFieldTypes},
		{"non-integer availability", "Widget", 10.0, "many", domain.ErrProductFieldTypes},
		{"invalid value after valid types", "ab", 10.0, 5, domain.ErrNameTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := domain.NewProductFromValues(tt.productName, tt.price, tt.availableAmount)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if product == nil {
				t.Fatal("expected product, got nil")
			}
		})
	}
}

func TestProductAvailability(t *testing.T) {
	product, err := domain.NewProduct("Widget", 10.0, 5)
	if err != nil {
		t.Fatalf("NewProduct() failed: %v", err)
	}

	if !product.IsAvailable(5) {
		t.Error("expected 5 items to be available")
	}
	if product.IsAvailable(6) {
		t.Error("expected 6 items to be unavailable")
	}

	product.Buy(3)

	if got := product.AvailableAmount(); got != 2 {
		t.Errorf("expected availability 2 after Buy(3), got %d", got)
	}
	if product.IsAvailable(3) {
		t.Error("expected 3 items to be unavailable after Buy(3)")
	}
	if !product.IsAvailable(2) {
		t.Error("expected 2 items to be available after Buy(3)")
	}
}

func TestProductIdentityByName(t *testing.T) {
	first, err := domain.NewProduct("Widget", 10.0, 5)
	if err != nil {
		t.Fatalf("NewProduct() failed: %v", err)
	}
	second, err := domain.NewProduct("Widget", 99.0, 1)
	if err != nil {
		t.Fatalf("NewProduct() failed: %v", err)
	}
	other, err := domain.NewProduct("Gadget", 10.0, 5)
	if err != nil {
		t.Fatalf("NewProduct() failed: %v", err)
	}

	if !first.Equal(second) {
		t.Error("products with equal names must compare equal regardless of price and stock")
	}
	if first.Equal(other) {
		t.Error("products with different names must not compare equal")
	}
	if first.Equal(nil) {
		t.Error("a product must not equal nil")
	}
	if first.String() != "Widget" {
		t.Errorf("expected string form %q, got %q", "Widget", first.String())
	}
}
