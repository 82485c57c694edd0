package adapters

import (
	"context"
	"time"

	"github.com/RyuuShuvi/eshop/internal/database"
	"github.com/RyuuShuvi/eshop/internal/shipping/domain"
	"github.com/RyuuShuvi/eshop/internal/shipping/ports"
	"github.com/RyuuShuvi/eshop/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableRepository struct {
	repo    ports.Repository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.Repository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Create(ctx context.Context, shipping domain.Shipping) error {
	ctx, span := telemetry.StartSpan(ctx, "ShippingRepository.Create")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("shipping.id", shipping.ID),
		attribute.String("shipping.order_id", shipping.OrderID),
		attribute.String("operation", "create"),
	)

	start := time.Now()
	err := r.repo.Create(ctx, shipping)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "create_shipping", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) Get(ctx context.Context, id string) (*domain.Shipping, error) {
	ctx, span := telemetry.StartSpan(ctx, "ShippingRepository.Get")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("shipping.id", id),
		attribute.String("operation", "get"),
	)

	start := time.Now()
	shipping, err := r.repo.Get(ctx, id)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "get_shipping", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return shipping, nil
}

func (r *ObservableRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	ctx, span := telemetry.StartSpan(ctx, "ShippingRepository.UpdateStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("shipping.id", id),
		attribute.String("shipping.new_status", status),
		attribute.String("operation", "update_status"),
	)

	start := time.Now()
	err := r.repo.UpdateStatus(ctx, id, status)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "update_shipping_status", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
