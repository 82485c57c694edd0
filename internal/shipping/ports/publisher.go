package ports

import "context"

// Publisher announces newly created shippings to the processing queue. The
// message body is the bare shipping id.
type Publisher interface {
	SendNewShipping(ctx context.Context, shippingID string) error
}

// Queue is the consumer side of the same channel: it yields up to max
// shipping ids awaiting processing.
type Queue interface {
	PollNewShippings(ctx context.Context, max int) ([]string, error)
}
