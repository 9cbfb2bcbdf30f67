package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/store/catalog"
	"github.com/m3rciful/storebot/store/session"
)

func fixtureReader() *catalog.MemoryReader {
	return catalog.NewMemoryReader(
		catalog.Product{ID: 1, Name: "Camiseta Tech", Price: 59.90},
		catalog.Product{ID: 2, Name: "Caneca Dev", Price: 35.00},
		catalog.Product{ID: 3, Name: "Boné Hacker", Price: 45.00},
		catalog.Product{ID: 4, Name: "Caderno Coder", Price: 69.90},
	)
}

func newTestService() (*Service, *catalog.MemoryReader, *session.Store) {
	reader := fixtureReader()
	sessions := session.NewStore()
	return NewService(sessions, reader), reader, sessions
}

func TestAddAccumulatesQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p, qty, err := svc.Add(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, "Camiseta Tech", p.Name)
	assert.Equal(t, 1, qty)

	_, qty, err = svc.Add(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _, sessions := newTestService()

	_, _, err := svc.Add(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, sessions.Get(42).Cart)
}

func TestAddCatalogUnavailable(t *testing.T) {
	svc, reader, sessions := newTestService()
	reader.Err = errors.New("connection refused")

	_, _, err := svc.Add(context.Background(), 42, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, sessions.Get(42).Cart)
}

func TestRemoveOneIsInverseOfAdd(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, _, err := svc.Add(ctx, 42, 2)
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, 42, 2)
	require.NoError(t, err)

	p, qty, err := svc.RemoveOne(ctx, 42, 2)
	require.NoError(t, err)
	assert.Equal(t, "Caneca Dev", p.Name)
	assert.Equal(t, 1, qty)

	_, qty, err = svc.RemoveOne(ctx, 42, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
	assert.NotContains(t, sessions.Get(42).Cart, int64(2))
}

func TestRemoveOneNotInCart(t *testing.T) {
	svc, _, _ := newTestService()

	p, _, err := svc.RemoveOne(context.Background(), 42, 3)
	assert.ErrorIs(t, err, ErrNotInCart)
	assert.Equal(t, "Boné Hacker", p.Name)
}

func TestRemoveOneNeverGoesNegative(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, _, err := svc.Add(ctx, 42, 1)
	require.NoError(t, err)

	_, _, err = svc.RemoveOne(ctx, 42, 1)
	require.NoError(t, err)

	_, _, err = svc.RemoveOne(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrNotInCart)
	assert.Empty(t, sessions.Get(42).Cart)
}

func TestRemoveOneSelfHealsVanishedProduct(t *testing.T) {
	svc, reader, sessions := newTestService()
	ctx := context.Background()

	_, _, err := svc.Add(ctx, 42, 2)
	require.NoError(t, err)
	reader.Remove(2)

	_, _, err = svc.RemoveOne(ctx, 42, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NotContains(t, sessions.Get(42).Cart, int64(2))
}

func TestRemoveOneUnknownProductNeverInCart(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.RemoveOne(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSummaryTotals(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Camiseta Tech x2 + Caneca Dev x1
	_, _, _ = svc.Add(ctx, 42, 1)
	_, _, _ = svc.Add(ctx, 42, 1)
	_, _, _ = svc.Add(ctx, 42, 2)

	sum, err := svc.Summary(ctx, 42)
	require.NoError(t, err)
	require.Len(t, sum.Lines, 2)
	assert.Equal(t, int64(1), sum.Lines[0].ProductID)
	assert.Equal(t, 2, sum.Lines[0].Qty)
	assert.InDelta(t, 119.80, sum.Lines[0].Subtotal, 0.001)
	assert.Equal(t, 3, sum.Units)
	assert.InDelta(t, 154.80, sum.Total, 0.001)
}

func TestSummaryEmptyCart(t *testing.T) {
	svc, _, _ := newTestService()

	sum, err := svc.Summary(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, sum.Empty())
	assert.Zero(t, sum.Total)
}

func TestSummaryMarksVanishedProductsUnavailable(t *testing.T) {
	svc, reader, sessions := newTestService()
	ctx := context.Background()

	_, _, _ = svc.Add(ctx, 42, 1)
	_, _, _ = svc.Add(ctx, 42, 2)
	reader.Remove(2)

	sum, err := svc.Summary(ctx, 42)
	require.NoError(t, err)
	require.Len(t, sum.Lines, 2)

	assert.False(t, sum.Lines[0].Unavailable)
	assert.True(t, sum.Lines[1].Unavailable)
	assert.Equal(t, int64(2), sum.Lines[1].ProductID)
	// unavailable line excluded from the total, but the cart is untouched
	assert.InDelta(t, 59.90, sum.Total, 0.001)
	assert.Equal(t, 1, sum.Units)
	assert.Equal(t, 1, sessions.Get(42).Cart[2])
}

func TestSummaryCatalogUnavailable(t *testing.T) {
	svc, reader, _ := newTestService()
	ctx := context.Background()

	_, _, _ = svc.Add(ctx, 42, 1)
	reader.Err = errors.New("connection refused")

	_, err := svc.Summary(ctx, 42)
	require.Error(t, err)
}

func TestCheckoutEmptiesCart(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, _, _ = svc.Add(ctx, 42, 1)
	_, _, _ = svc.Add(ctx, 42, 3)

	sum, err := svc.Checkout(ctx, 42)
	require.NoError(t, err)
	assert.InDelta(t, 104.90, sum.Total, 0.001)
	assert.Equal(t, 2, sum.Units)
	assert.Empty(t, sessions.Get(42).Cart)

	_, err = svc.Checkout(ctx, 42)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

// resolveHookReader lets a test interleave a cart mutation with the
// catalog reads that Checkout performs while resolving the summary.
type resolveHookReader struct {
	catalog.Reader
	onGet func()
}

func (r *resolveHookReader) GetProduct(ctx context.Context, id int64) (catalog.Product, error) {
	if r.onGet != nil {
		r.onGet()
	}
	return r.Reader.GetProduct(ctx, id)
}

func TestCheckoutKeepsUnitsAddedDuringResolve(t *testing.T) {
	sessions := session.NewStore()
	hook := &resolveHookReader{Reader: fixtureReader()}
	svc := NewService(sessions, hook)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, 42, 1)
	require.NoError(t, err)

	// While checkout is resolving, the same user adds a second unit of
	// product 1 and a brand-new product 3.
	fired := false
	hook.onGet = func() {
		if fired {
			return
		}
		fired = true
		sessions.Update(42, func(sess *session.Session) {
			sess.Cart[1]++
			sess.Cart[3] = 1
		})
	}

	sum, err := svc.Checkout(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Units)

	// The order consumed only the snapshotted unit; the concurrent
	// additions are still in the cart.
	after := sessions.Get(42).Cart
	assert.Equal(t, 1, after[1])
	assert.Equal(t, 1, after[3])
}

func TestCheckoutKeepsCartOnCatalogFailure(t *testing.T) {
	svc, reader, sessions := newTestService()
	ctx := context.Background()

	_, _, _ = svc.Add(ctx, 42, 1)
	reader.Err = errors.New("connection refused")

	_, err := svc.Checkout(ctx, 42)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 1, sessions.Get(42).Cart[1])
}

func TestUsersHaveIndependentCarts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, _ = svc.Add(ctx, 1, 1)
	_, _, _ = svc.Add(ctx, 2, 2)

	sumA, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	sumB, err := svc.Summary(ctx, 2)
	require.NoError(t, err)

	require.Len(t, sumA.Lines, 1)
	require.Len(t, sumB.Lines, 1)
	assert.Equal(t, int64(1), sumA.Lines[0].ProductID)
	assert.Equal(t, int64(2), sumB.Lines[0].ProductID)
}
