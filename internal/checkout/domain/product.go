package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrProductFieldTypes is returned when a product is built from
	// loosely-typed values of the wrong kind.
	ErrProductFieldTypes = errors.New("incorrect product field types")

	ErrPriceNotPositive     = errors.New("price must be greater than 0")
	ErrNameTooShort         = errors.New("name must have 3 or more characters")
	ErrNegativeAvailability = errors.New("available amount must be >= 0")
	ErrInsufficientStock    = errors.New("insufficient stock")
)

// Product is an inventory record. Its name and price are fixed at
// construction; only the available amount changes, through Buy.
//
// Two products are interchangeable iff their names are equal, regardless
// of price or stock. ShoppingCart keys on the name for that reason.
type Product struct {
	name            string
	price           float64
	availableAmount int
}

// NewProduct validates the fields and returns a product.
func NewProduct(name string, price float64, availableAmount int) (*Product, error) {
	if price <= 0 {
		return nil, ErrPriceNotPositive
	}
	// Characters, not bytes: Cyrillic carrier and product names are the norm.
	if utf8.RuneCountInString(name) < 3 {
		return nil, ErrNameTooShort
	}
	if availableAmount < 0 {
		return nil, ErrNegativeAvailability
	}

	return &Product{
		name:            name,
		price:           price,
		availableAmount: availableAmount,
	}, nil
}

// NewProductFromValues builds a product from dynamically typed values, as
// they arrive from loosely structured payloads. A wrong kind yields
// ErrProductFieldTypes; valid kinds go through the same validation as
// NewProduct.
func NewProductFromValues(name, price, availableAmount any) (*Product, error) {
	n, ok := name.(string)
	if !ok {
		return nil, fmt.Errorf("%w: name must be a string", ErrProductFieldTypes)
	}

	p, ok := price.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: price must be a number", ErrProductFieldTypes)
	}

	a, ok := availableAmount.(int)
	if !ok {
		return nil, fmt.Errorf("%w: available amount must be an integer", ErrProductFieldTypes)
	}

	return NewProduct(n, p, a)
}

func (p *Product) Name() string { return p.name }

func (p *Product) Price() float64 { return p.price }

func (p *Product) AvailableAmount() int { return p.availableAmount }

// IsAvailable reports whether the requested amount is in stock. Pure query.
func (p *Product) IsAvailable(requestedAmount int) bool {
	return p.availableAmount >= requestedAmount
}

// Buy decrements the available amount without a bound check. Callers must
// have validated availability beforehand; see ShoppingCart.AddProduct.
func (p *Product) Buy(requestedAmount int) {
	p.availableAmount -= requestedAmount
}

// Equal treats products with the same name as the same product.
func (p *Product) Equal(other *Product) bool {
	if other == nil {
		return false
	}
	return p.name == other.name
}

func (p *Product) String() string { return p.name }
