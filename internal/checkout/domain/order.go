package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultDueDateWindow is the fallback shipping due window applied when
// PlaceOrder is called without an explicit due date. The window is narrow;
// callers with real delivery latency should pass their own due date.
const DefaultDueDateWindow = 3 * time.Second

// ShippingService is the external collaborator that creates shipping
// requests and tracks their status. Transitions between shipping statuses
// are owned entirely by the service; Order only triggers creation.
type ShippingService interface {
	CreateShipping(ctx context.Context, shippingType string, productIDs []string, orderID string, dueDate time.Time) (string, error)
	CheckStatus(ctx context.Context, shippingID string) (string, error)
	ListAvailableShippingTypes() []string
}

// SubmitPolicy controls when the cart is submitted relative to the shipping
// creation call.
type SubmitPolicy int

const (
	// SubmitBeforeShipping submits the cart first: inventory is decremented
	// and the cart emptied even when the shipping call then fails. This is
	// the legacy ordering and the default.
	SubmitBeforeShipping SubmitPolicy = iota

	// ShippingBeforeSubmit creates the shipping request first, so a
	// rejected shipping type or due date leaves inventory and cart intact.
	ShippingBeforeSubmit
)

// Order converts one cart into a shipping request. The order id is
// generated at construction and never changes.
type Order struct {
	cart     *ShoppingCart
	shipping ShippingService
	id       string
	policy   SubmitPolicy
}

type OrderOption func(*Order)

// WithSubmitPolicy overrides the cart-submission ordering.
func WithSubmitPolicy(policy SubmitPolicy) OrderOption {
	return func(o *Order) { o.policy = policy }
}

// NewOrder builds an order over a cart and a shipping service handle. The
// cart is used exclusively by this order.
func NewOrder(cart *ShoppingCart, shipping ShippingService, opts ...OrderOption) *Order {
	o := &Order{
		cart:     cart,
		shipping: shipping,
		id:       uuid.NewString(),
		policy:   SubmitBeforeShipping,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Order) ID() string { return o.id }

// PlaceOrder submits the cart and requests shipping creation, returning the
// shipping identifier. A zero dueDate defaults to now + DefaultDueDateWindow.
// Shipping service errors are propagated unchanged; under the default
// policy the cart has already been submitted by then and there is no
// rollback.
func (o *Order) PlaceOrder(ctx context.Context, shippingType string, dueDate time.Time) (string, error) {
	if dueDate.IsZero() {
		dueDate = time.Now().UTC().Add(DefaultDueDateWindow)
	}

	if o.policy == ShippingBeforeSubmit {
		shippingID, err := o.shipping.CreateShipping(ctx, shippingType, o.cart.ProductIDs(), o.id, dueDate)
		if err != nil {
			return "", err
		}
		o.cart.SubmitCartOrder()
		return shippingID, nil
	}

	productIDs := o.cart.SubmitCartOrder()
	return o.shipping.CreateShipping(ctx, shippingType, productIDs, o.id, dueDate)
}

// Shipment is a read-facing handle over a previously created shipping
// request.
type Shipment struct {
	shippingID string
	shipping   ShippingService
}

func NewShipment(shippingID string, shipping ShippingService) *Shipment {
	return &Shipment{shippingID: shippingID, shipping: shipping}
}

func (s *Shipment) ShippingID() string { return s.shippingID }

// CheckShippingStatus delegates to the shipping service; no local state.
func (s *Shipment) CheckShippingStatus(ctx context.Context) (string, error) {
	return s.shipping.CheckStatus(ctx, s.shippingID)
}
