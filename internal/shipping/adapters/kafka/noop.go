package kafka

import (
	"context"
	"log/slog"
)

// NoopPublisher logs new shippings without sending them anywhere. Useful
// for local dev before wiring Kafka.
type NoopPublisher struct{}

// NewNoopPublisher returns a new no-op publisher.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) SendNewShipping(_ context.Context, shippingID string) error {
	slog.Debug("event::new_shipping", "shipping_id", shippingID)
	return nil
}
