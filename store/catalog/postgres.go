package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m3rciful/storebot/core/logger"
)

// PostgresReader reads the catalog from the products table.
type PostgresReader struct {
	db *sqlx.DB
}

// NewPostgresReader wraps a connected sqlx handle.
func NewPostgresReader(db *sqlx.DB) *PostgresReader {
	return &PostgresReader{db: db}
}

// ListProducts returns every product ordered by id.
func (r *PostgresReader) ListProducts(ctx context.Context) ([]Product, error) {
	start := time.Now()
	var products []Product
	err := r.db.SelectContext(ctx, &products,
		`SELECT id, name, price, description, image FROM products ORDER BY id`)
	if err != nil {
		logger.Error(ctx, "store.catalog", "catalog.list.fail",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	logger.Debug(ctx, "store.catalog", "catalog.list",
		slog.Int("count", len(products)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return products, nil
}

// GetProduct fetches a single product by id.
func (r *PostgresReader) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p,
		`SELECT id, name, price, description, image FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		logger.Error(ctx, "store.catalog", "catalog.get.fail",
			slog.Int64("product_id", id),
			slog.String("err", err.Error()),
		)
		return Product{}, fmt.Errorf("catalog: get product %d: %w", id, err)
	}
	return p, nil
}
