package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RyuuShuvi/eshop/internal/shipping/domain"
	"github.com/RyuuShuvi/eshop/internal/shipping/ports"
	"github.com/redis/go-redis/v9"
)

// Repository keeps each shipping as one redis hash under shipping:<id>.
type Repository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) *Repository {
	return &Repository{client: client}
}

func shippingKey(id string) string {
	return "shipping:" + id
}

func (r *Repository) Create(ctx context.Context, shipping domain.Shipping) error {
	fields := map[string]any{
		"shipping_type": shipping.ShippingType,
		"product_ids":   strings.Join(shipping.ProductIDs, ","),
		"order_id":      shipping.OrderID,
		"status":        shipping.Status,
		"due_date":      shipping.DueDate.UTC().Format(time.RFC3339Nano),
		"created_at":    shipping.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":    shipping.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	if err := r.client.HSet(ctx, shippingKey(shipping.ID), fields).Err(); err != nil {
		return fmt.Errorf("hset shipping: %w", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Shipping, error) {
	fields, err := r.client.HGetAll(ctx, shippingKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall shipping: %w", err)
	}
	if len(fields) == 0 {
		return nil, ports.ErrNotFound
	}

	shipping := domain.Shipping{
		ID:           id,
		ShippingType: fields["shipping_type"],
		OrderID:      fields["order_id"],
		Status:       fields["status"],
	}

	if ids := fields["product_ids"]; ids != "" {
		shipping.ProductIDs = strings.Split(ids, ",")
	}

	for field, dst := range map[string]*time.Time{
		"due_date":   &shipping.DueDate,
		"created_at": &shipping.CreatedAt,
		"updated_at": &shipping.UpdatedAt,
	} {
		parsed, err := time.Parse(time.RFC3339Nano, fields[field])
		if err != nil {
			return nil, fmt.Errorf("parse shipping %s: %w", field, err)
		}
		*dst = parsed
	}

	return &shipping, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status string) error {
	key := shippingKey(id)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("exists shipping: %w", err)
	}
	if exists == 0 {
		return ports.ErrNotFound
	}

	err = r.client.HSet(ctx, key,
		"status", status,
		"updated_at", time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("hset shipping status: %w", err)
	}

	return nil
}
