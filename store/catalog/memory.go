package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryReader is an in-memory Reader, used by tests and local runs
// without a database.
type MemoryReader struct {
	mu       sync.RWMutex
	products map[int64]Product
	// Err, when set, is returned by every read to simulate an unavailable catalog.
	Err error
}

// NewMemoryReader builds a MemoryReader preloaded with the given products.
func NewMemoryReader(products ...Product) *MemoryReader {
	m := &MemoryReader{products: make(map[int64]Product, len(products))}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

// ListProducts returns all products ordered by id.
func (m *MemoryReader) ListProducts(ctx context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetProduct returns the product with the given id or ErrNotFound.
func (m *MemoryReader) GetProduct(ctx context.Context, id int64) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return Product{}, m.Err
	}
	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Remove deletes a product, letting tests model items that vanish from the
// catalog while still referenced by carts.
func (m *MemoryReader) Remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
}
