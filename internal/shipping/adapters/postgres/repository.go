package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RyuuShuvi/eshop/internal/shipping/domain"
	"github.com/RyuuShuvi/eshop/internal/shipping/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, shipping domain.Shipping) error {
	query := `
		INSERT INTO shippings (id, shipping_type, product_ids, order_id, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		shipping.ID,
		shipping.ShippingType,
		joinProductIDs(shipping.ProductIDs),
		shipping.OrderID,
		shipping.Status,
		shipping.DueDate,
		shipping.CreatedAt,
		shipping.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipping: %w", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Shipping, error) {
	query := `
		SELECT id, shipping_type, product_ids, order_id, status, due_date, created_at, updated_at
		FROM shippings
		WHERE id = $1
	`

	var shipping domain.Shipping
	var productIDs string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&shipping.ID,
		&shipping.ShippingType,
		&productIDs,
		&shipping.OrderID,
		&shipping.Status,
		&shipping.DueDate,
		&shipping.CreatedAt,
		&shipping.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select shipping: %w", err)
	}

	shipping.ProductIDs = splitProductIDs(productIDs)
	return &shipping, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `
		UPDATE shippings
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update shipping status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// Product ids are stored comma-joined in a single column.
func joinProductIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitProductIDs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
