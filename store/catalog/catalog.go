// Package catalog provides read access to the product catalog.
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested product does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// Product is a single sellable catalog item. Description and Image are
// optional columns and stay nil when absent.
type Product struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Price       float64 `db:"price"`
	Description *string `db:"description"`
	Image       *string `db:"image"`
}

// Reader is the read-only catalog boundary used by cart and view code.
// Implementations must return ErrNotFound for a missing product and wrap
// infrastructure failures in any other error.
type Reader interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
}
