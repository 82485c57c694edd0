package memory

import (
	"context"
	"sync"
)

// Queue is an in-memory new-shipping channel implementing both the
// publisher and the consumer side.
type Queue struct {
	mu  sync.Mutex
	ids []string
}

func NewQueue() *Queue {
	return &Queue{}
}

// SendNewShipping appends the shipping id to the queue.
func (q *Queue) SendNewShipping(_ context.Context, shippingID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, shippingID)
	return nil
}

// PollNewShippings removes and returns up to max queued ids, oldest first.
func (q *Queue) PollNewShippings(_ context.Context, max int) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := max
	if n > len(q.ids) {
		n = len(q.ids)
	}
	if n <= 0 {
		return nil, nil
	}

	polled := make([]string, n)
	copy(polled, q.ids[:n])
	q.ids = q.ids[n:]
	return polled, nil
}

// Len reports how many ids are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}
