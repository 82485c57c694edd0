package queries

import (
	"context"
	"errors"
	"strings"

	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
)

// ShippingStatusQuery represents a request for the status of a shipping.
type ShippingStatusQuery struct {
	ShippingID string
}

// Validate ensures the query has valid parameters.
func (q ShippingStatusQuery) Validate() error {
	if strings.TrimSpace(q.ShippingID) == "" {
		return errors.New("shipping_id is required")
	}
	return nil
}

// ShippingStatusQueryHandler executes ShippingStatusQuery against the
// shipping service through a Shipment handle.
type ShippingStatusQueryHandler struct {
	shipping domain.ShippingService
}

// NewShippingStatusQueryHandler constructs a ShippingStatusQueryHandler.
func NewShippingStatusQueryHandler(shipping domain.ShippingService) *ShippingStatusQueryHandler {
	return &ShippingStatusQueryHandler{shipping: shipping}
}

// Handle executes the query and returns the current shipping status.
func (h *ShippingStatusQueryHandler) Handle(ctx context.Context, query ShippingStatusQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	shipment := domain.NewShipment(query.ShippingID, h.shipping)
	return shipment.CheckShippingStatus(ctx)
}
