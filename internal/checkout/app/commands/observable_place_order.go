package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/RyuuShuvi/eshop/internal/checkout/metrics"
	"github.com/RyuuShuvi/eshop/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordOrderPlacementDuration(ctx, duration)
		o.metrics.RecordOrderPlaced(ctx, success)
	}()

	o.logger.InfoContext(ctx, "placing order",
		"shipping_type", cmd.ShippingType,
		"items", len(cmd.Items),
	)

	result, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to place order",
			"error", err,
			"shipping_type", cmd.ShippingType,
		)
		return nil, err
	}

	o.metrics.RecordOrderTotal(ctx, result.Total)

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", result.OrderID),
		attribute.String("order.shipping_id", result.ShippingID),
		attribute.Float64("order.total", result.Total),
	)

	o.logger.InfoContext(ctx, "order placed successfully",
		"order_id", result.OrderID,
		"shipping_id", result.ShippingID,
		"total", result.Total,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return result, nil
}
