package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
	"github.com/RyuuShuvi/eshop/internal/checkout/ports"
)

var (
	ErrShippingTypeRequired = errors.New("shipping_type is required")
	ErrItemNameRequired     = errors.New("item product name is required")
	ErrItemQuantityInvalid  = errors.New("item quantity must be positive")
)

// OrderItem is one requested cart line.
type OrderItem struct {
	ProductName string
	Quantity    int
}

// PlaceOrderCommand captures a full checkout request. A zero DueDate falls
// back to the domain's default due window.
type PlaceOrderCommand struct {
	Items        []OrderItem
	ShippingType string
	DueDate      time.Time
}

func (c PlaceOrderCommand) Validate() error {
	if strings.TrimSpace(c.ShippingType) == "" {
		return ErrShippingTypeRequired
	}
	for _, item := range c.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return ErrItemNameRequired
		}
		if item.Quantity <= 0 {
			return ErrItemQuantityInvalid
		}
	}
	return nil
}

// PlaceOrderResult reports the identifiers produced by a checkout and the
// cart total at submission time.
type PlaceOrderResult struct {
	OrderID    string  `json:"order_id"`
	ShippingID string  `json:"shipping_id"`
	Total      float64 `json:"total"`
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error)
}

type PlaceOrderCommandHandler struct {
	products ports.ProductRepository
	shipping domain.ShippingService
	policy   domain.SubmitPolicy
}

func NewPlaceOrderCommandHandler(
	products ports.ProductRepository,
	shipping domain.ShippingService,
	policy domain.SubmitPolicy,
) *PlaceOrderCommandHandler {
	return &PlaceOrderCommandHandler{
		products: products,
		shipping: shipping,
		policy:   policy,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cart := domain.NewShoppingCart()
	resolved := make([]*domain.Product, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		product, err := h.products.GetByName(ctx, item.ProductName)
		if err != nil {
			return nil, err
		}
		if err := cart.AddProduct(product, item.Quantity); err != nil {
			return nil, err
		}
		resolved = append(resolved, product)
	}

	total := cart.CalculateTotal()
	order := domain.NewOrder(cart, h.shipping, domain.WithSubmitPolicy(h.policy))

	shippingID, placeErr := order.PlaceOrder(ctx, cmd.ShippingType, cmd.DueDate)

	// Under the legacy ordering the stock is decremented even when the
	// shipping call fails, so the new availability is persisted either way.
	var persistErr error
	for _, product := range resolved {
		if err := h.products.UpdateAvailability(ctx, product.Name(), product.AvailableAmount()); err != nil && persistErr == nil {
			persistErr = err
		}
	}

	if placeErr != nil {
		return nil, placeErr
	}
	if persistErr != nil {
		return nil, fmt.Errorf("order placed but failed to persist stock: %w", persistErr)
	}

	return &PlaceOrderResult{
		OrderID:    order.ID(),
		ShippingID: shippingID,
		Total:      total,
	}, nil
}
