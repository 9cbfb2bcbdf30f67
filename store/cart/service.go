// Package cart implements the per-user shopping cart and checkout flow.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/m3rciful/storebot/core/logger"
	"github.com/m3rciful/storebot/store/catalog"
	"github.com/m3rciful/storebot/store/session"
)

var (
	// ErrProductNotFound is returned when the requested product id is not in the catalog.
	ErrProductNotFound = errors.New("cart: product not found")
	// ErrNotInCart is returned when removing a product the user never added.
	ErrNotInCart = errors.New("cart: product not in cart")
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = errors.New("cart: cart is empty")
)

// Line is one cart row resolved against the catalog. When the product has
// meanwhile vanished from the catalog, Unavailable is set, Product stays
// zero, and the line does not count toward the total.
type Line struct {
	ProductID   int64
	Qty         int
	Product     catalog.Product
	Unavailable bool
	Subtotal    float64
}

// Summary is the resolved cart content at a point in time.
// Units and Total cover resolvable lines only.
type Summary struct {
	Lines []Line
	Units int
	Total float64
}

// Empty reports whether the cart had no lines at all.
func (s Summary) Empty() bool {
	return len(s.Lines) == 0
}

// Service mutates cart state and resolves it against the catalog.
type Service struct {
	sessions *session.Store
	catalog  catalog.Reader
}

// NewService wires the cart service to its session store and catalog reader.
func NewService(sessions *session.Store, reader catalog.Reader) *Service {
	return &Service{sessions: sessions, catalog: reader}
}

// Add puts one unit of the product into the user's cart and returns the
// product plus the new quantity. The product is validated against the
// catalog before the cart changes, so an unknown id never lands in state.
func (s *Service) Add(ctx context.Context, userID, productID int64) (catalog.Product, int, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Product{}, 0, ErrProductNotFound
		}
		return catalog.Product{}, 0, fmt.Errorf("cart: add: %w", err)
	}

	var qty int
	s.sessions.Update(userID, func(sess *session.Session) {
		sess.Cart[productID]++
		qty = sess.Cart[productID]
	})

	logger.Info(ctx, "store.cart", "cart.add",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int("qty", qty),
	)
	return p, qty, nil
}

// RemoveOne decrements the product's quantity by one, deleting the line
// when it reaches zero, and returns the product plus the remaining
// quantity. A product that vanished from the catalog self-heals: any
// stray line is deleted and ErrProductNotFound is returned. ErrNotInCart
// still carries the product so callers can name it to the user.
func (s *Service) RemoveOne(ctx context.Context, userID, productID int64) (catalog.Product, int, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.sessions.Update(userID, func(sess *session.Session) {
				delete(sess.Cart, productID)
			})
			logger.Warn(ctx, "store.cart", "cart.line.stale",
				slog.Int64("user_id", userID),
				slog.Int64("product_id", productID),
			)
			return catalog.Product{}, 0, ErrProductNotFound
		}
		return catalog.Product{}, 0, fmt.Errorf("cart: remove: %w", err)
	}

	var (
		qty   int
		found bool
	)
	s.sessions.Update(userID, func(sess *session.Session) {
		current, ok := sess.Cart[productID]
		if !ok || current <= 0 {
			delete(sess.Cart, productID)
			return
		}
		found = true
		current--
		if current == 0 {
			delete(sess.Cart, productID)
		} else {
			sess.Cart[productID] = current
		}
		qty = current
	})

	if !found {
		return p, 0, ErrNotInCart
	}

	logger.Info(ctx, "store.cart", "cart.remove_one",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int("qty", qty),
	)
	return p, qty, nil
}

// Summary resolves the user's cart against the catalog without mutating
// it. Lines whose product has vanished are marked unavailable and excluded
// from the total; infrastructure failures abort the whole summary instead
// of producing a partial total.
func (s *Service) Summary(ctx context.Context, userID int64) (Summary, error) {
	snapshot := s.sessions.Get(userID)
	return s.resolve(ctx, snapshot)
}

// Checkout finalizes the order: it resolves the cart, consumes the
// resolved lines, and returns the final summary. The cart only shrinks
// after a successful resolve, so a catalog outage never loses the user's
// cart. Only the snapshotted quantities are consumed; units added while
// the catalog resolve was in flight stay in the cart for the next order.
func (s *Service) Checkout(ctx context.Context, userID int64) (Summary, error) {
	snapshot := s.sessions.Get(userID)
	if len(snapshot.Cart) == 0 {
		return Summary{}, ErrEmptyCart
	}

	summary, err := s.resolve(ctx, snapshot)
	if err != nil {
		return Summary{}, err
	}

	s.sessions.Update(userID, func(sess *session.Session) {
		for productID, qty := range snapshot.Cart {
			remaining := sess.Cart[productID] - qty
			if remaining > 0 {
				sess.Cart[productID] = remaining
			} else {
				delete(sess.Cart, productID)
			}
		}
	})

	logger.Info(ctx, "store.cart", "cart.checkout",
		slog.Int64("user_id", userID),
		slog.Int("cart_size", summary.Units),
		slog.String("total", fmt.Sprintf("%.2f", summary.Total)),
	)
	return summary, nil
}

func (s *Service) resolve(ctx context.Context, snapshot session.Session) (Summary, error) {
	var summary Summary
	for productID, qty := range snapshot.Cart {
		if qty <= 0 {
			continue
		}
		p, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				summary.Lines = append(summary.Lines, Line{
					ProductID:   productID,
					Qty:         qty,
					Unavailable: true,
				})
				continue
			}
			return Summary{}, fmt.Errorf("cart: resolve: %w", err)
		}
		summary.Lines = append(summary.Lines, Line{
			ProductID: productID,
			Qty:       qty,
			Product:   p,
			Subtotal:  p.Price * float64(qty),
		})
		summary.Units += qty
		summary.Total += p.Price * float64(qty)
	}

	sort.Slice(summary.Lines, func(i, j int) bool {
		return summary.Lines[i].ProductID < summary.Lines[j].ProductID
	})
	return summary, nil
}
