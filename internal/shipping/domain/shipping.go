package domain

import "time"

// Shipping statuses form a strictly forward chain: a shipping is created,
// moves to in progress once persisted and queued, and ends completed.
// Processing an overdue shipping fails it instead of completing it.
const (
	StatusCreated    = "created"
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Shipping is one shipping request tracked by the service.
type Shipping struct {
	ID           string    `json:"id"`
	ShippingType string    `json:"shipping_type"`
	ProductIDs   []string  `json:"product_ids"`
	OrderID      string    `json:"order_id"`
	Status       string    `json:"status"`
	DueDate      time.Time `json:"due_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsTerminal indicates whether the shipping reached a final state.
func (s Shipping) IsTerminal() bool {
	switch s.Status {
	case StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsOverdue reports whether the due date has passed at the given instant.
func (s Shipping) IsOverdue(now time.Time) bool {
	return s.DueDate.Before(now)
}
