package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RyuuShuvi/eshop/internal/shipping/domain"
	"github.com/RyuuShuvi/eshop/internal/shipping/ports"
	"github.com/google/uuid"
)

// Contract errors. Callers assert on these messages, so they are kept
// verbatim from the service's published contract.
var (
	ErrShippingTypeNotAvailable = errors.New("Shipping type is not available")
	ErrDueDateNotInFuture       = errors.New("Shipping due datetime must be greater than datetime now")
)

// availableShippingTypes is the fixed carrier list the service supports.
var availableShippingTypes = []string{
	"Nova Poshta",
	"Ukr Poshta",
	"Meest Express",
	"Self Pickup",
}

// Service accepts shipping-creation and status-query calls and owns the
// shipping status lifecycle. It persists records through a Repository and
// hands new shipping ids to a Publisher; a Queue feeds batch processing.
type Service struct {
	repo      ports.Repository
	publisher ports.Publisher
	queue     ports.Queue
	logger    *slog.Logger
}

type Option func(*Service)

// WithQueue attaches the consumer side used by ProcessShippingBatch.
func WithQueue(queue ports.Queue) Option {
	return func(s *Service) { s.queue = queue }
}

func NewService(repo ports.Repository, publisher ports.Publisher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAvailableShippingTypes returns the supported carriers in a fixed order.
func (s *Service) ListAvailableShippingTypes() []string {
	types := make([]string, len(availableShippingTypes))
	copy(types, availableShippingTypes)
	return types
}

// CreateShipping validates the request, persists the shipping as created,
// publishes its id and moves it to in progress. Returns the new shipping id.
func (s *Service) CreateShipping(ctx context.Context, shippingType string, productIDs []string, orderID string, dueDate time.Time) (string, error) {
	if !s.isTypeAvailable(shippingType) {
		return "", ErrShippingTypeNotAvailable
	}
	if !dueDate.After(time.Now().UTC()) {
		return "", ErrDueDateNotInFuture
	}

	now := time.Now().UTC()
	shipping := domain.Shipping{
		ID:           uuid.NewString(),
		ShippingType: shippingType,
		ProductIDs:   productIDs,
		OrderID:      orderID,
		Status:       domain.StatusCreated,
		DueDate:      dueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, shipping); err != nil {
		return "", fmt.Errorf("create shipping: %w", err)
	}

	if err := s.publisher.SendNewShipping(ctx, shipping.ID); err != nil {
		return "", fmt.Errorf("publish new shipping: %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, shipping.ID, domain.StatusInProgress); err != nil {
		return "", fmt.Errorf("mark shipping in progress: %w", err)
	}

	s.logger.InfoContext(ctx, "shipping created",
		"shipping_id", shipping.ID,
		"order_id", orderID,
		"shipping_type", shippingType,
		"due_date", dueDate,
	)

	return shipping.ID, nil
}

// CheckStatus returns the current status of a shipping.
func (s *Service) CheckStatus(ctx context.Context, shippingID string) (string, error) {
	shipping, err := s.repo.Get(ctx, shippingID)
	if err != nil {
		return "", err
	}
	return shipping.Status, nil
}

// ProcessShipping completes a shipping, or fails it when its due date has
// already passed. Returns the resulting status.
func (s *Service) ProcessShipping(ctx context.Context, shippingID string) (string, error) {
	shipping, err := s.repo.Get(ctx, shippingID)
	if err != nil {
		return "", err
	}

	// Queue deliveries are at-least-once; a replay must not flip a
	// finished shipping.
	if shipping.IsTerminal() {
		return shipping.Status, nil
	}

	status := domain.StatusCompleted
	if shipping.IsOverdue(time.Now().UTC()) {
		status = domain.StatusFailed
	}

	if err := s.repo.UpdateStatus(ctx, shippingID, status); err != nil {
		return "", fmt.Errorf("update shipping status: %w", err)
	}

	s.logger.InfoContext(ctx, "shipping processed",
		"shipping_id", shippingID,
		"status", status,
	)

	return status, nil
}

// ProcessShippingBatch drains the queue and processes every polled shipping.
// Returns the ids that were processed.
func (s *Service) ProcessShippingBatch(ctx context.Context) ([]string, error) {
	if s.queue == nil {
		return nil, errors.New("no shipping queue configured")
	}

	ids, err := s.queue.PollNewShippings(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("poll new shippings: %w", err)
	}

	processed := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := s.ProcessShipping(ctx, id); err != nil {
			return processed, err
		}
		processed = append(processed, id)
	}

	return processed, nil
}

func (s *Service) isTypeAvailable(shippingType string) bool {
	for _, t := range availableShippingTypes {
		if t == shippingType {
			return true
		}
	}
	return false
}
