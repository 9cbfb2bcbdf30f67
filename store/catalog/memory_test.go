package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReaderListOrdered(t *testing.T) {
	r := NewMemoryReader(
		Product{ID: 3, Name: "Boné Hacker", Price: 45.00},
		Product{ID: 1, Name: "Camiseta Tech", Price: 59.90},
		Product{ID: 2, Name: "Caneca Dev", Price: 35.00},
	)

	list, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)
	assert.Equal(t, int64(3), list[2].ID)
}

func TestMemoryReaderGetNotFound(t *testing.T) {
	r := NewMemoryReader(Product{ID: 1, Name: "Camiseta Tech", Price: 59.90})

	_, err := r.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReaderUnavailable(t *testing.T) {
	r := NewMemoryReader(Product{ID: 1, Name: "Camiseta Tech", Price: 59.90})
	r.Err = errors.New("connection refused")

	_, err := r.ListProducts(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = r.GetProduct(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
