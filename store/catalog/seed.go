package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/m3rciful/storebot/core/logger"
)

func strPtr(s string) *string { return &s }

// FixtureProducts is the starter catalog inserted on first boot.
func FixtureProducts() []Product {
	return []Product{
		{Name: "Camiseta Tech", Price: 59.90,
			Description: strPtr("Camiseta de algodão com estampa de tecnologia."),
			Image:       strPtr("https://placehold.co/600x400/007bff/white?text=Camiseta")},
		{Name: "Caneca Dev", Price: 35.00,
			Description: strPtr("Caneca de cerâmica para seu café ou chá."),
			Image:       strPtr("https://placehold.co/600x400/28a745/white?text=Caneca")},
		{Name: "Boné Hacker", Price: 45.00,
			Description: strPtr("Boné estiloso para todas as ocasiões."),
			Image:       strPtr("https://placehold.co/600x400/ffc107/black?text=Boné")},
		{Name: "Caderno Coder", Price: 69.90,
			Description: strPtr("Caderno para suas anotações e diagramas."),
			Image:       strPtr("https://placehold.co/600x400/dc3545/white?text=Caderno")},
	}
}

// Seeder inserts the fixture catalog when the products table is empty.
type Seeder struct{}

// Seed is idempotent: a non-empty table leaves existing rows untouched.
func (Seeder) Seed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
		return fmt.Errorf("catalog seed: count products: %w", err)
	}
	if count > 0 {
		logger.Debug(ctx, "seed", "catalog.seed.skip",
			slog.Int("existing", count),
		)
		return nil
	}

	for _, p := range FixtureProducts() {
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (name, price, description, image) VALUES ($1, $2, $3, $4)`,
			p.Name, p.Price, p.Description, p.Image,
		)
		if err != nil {
			return fmt.Errorf("catalog seed: insert %q: %w", p.Name, err)
		}
	}

	logger.Info(ctx, "seed", "catalog.seed.done",
		slog.Int("inserted", len(FixtureProducts())),
	)
	return nil
}
