package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
	"github.com/RyuuShuvi/eshop/internal/checkout/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, price, available_amount)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, product.Name(), product.Price(), product.AvailableAmount())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrProductExists
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT name, price, available_amount
		FROM products
		WHERE name = $1
	`

	var (
		gotName         string
		price           float64
		availableAmount int
	)
	err := r.pool.QueryRow(ctx, query, name).Scan(&gotName, &price, &availableAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrProductNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	product, err := domain.NewProduct(gotName, price, availableAmount)
	if err != nil {
		return nil, fmt.Errorf("stored product is invalid: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT name, price, available_amount
		FROM products
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var (
			name            string
			price           float64
			availableAmount int
		)
		if err := rows.Scan(&name, &price, &availableAmount); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		product, err := domain.NewProduct(name, price, availableAmount)
		if err != nil {
			return nil, fmt.Errorf("stored product is invalid: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) UpdateAvailability(ctx context.Context, name string, availableAmount int) error {
	query := `
		UPDATE products
		SET available_amount = $1
		WHERE name = $2
	`

	result, err := r.pool.Exec(ctx, query, availableAmount, name)
	if err != nil {
		return fmt.Errorf("update product availability: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrProductNotFound
	}

	return nil
}
