// Package store is the inventory/cart consistency engine. A single Store owns
// the catalog and the active cart and serializes every logical operation under
// one mutex, so the cross-entity invariant (cart quantity never exceeds
// product stock) is checked and updated atomically.
package store

import (
	"fmt"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
)

// ErrEmptyCart is returned by Checkout when the cart has no entries.
var ErrEmptyCart = errors.New("cart is empty")

// CartView is a read-only snapshot of the cart for display.
type CartView struct {
	Items []cart.Entry
	Total decimal.Decimal
}

// Receipt is the result of a successful checkout.
type Receipt struct {
	ID    string
	Total decimal.Decimal
}

// Store combines the catalog and the session cart behind one lock. Operations
// never block on I/O while holding it, so hold times stay short and bounded.
type Store struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	cart    *cart.Cart
}

// New builds a store from the product seed. Seed validation errors (duplicate
// ids, negative stock or price) are returned as-is from the catalog.
func New(seeds []catalog.Seed) (*Store, error) {
	c, err := catalog.New(seeds)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog")
	}
	return &Store{
		catalog: c,
		cart:    cart.New(),
	}, nil
}

// Products returns a stock-accurate snapshot of the catalog ordered by id.
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

// Add resolves the product and merges qty into the cart, enforcing the stock
// bound. It reports whether the entry was freshly added or merged.
func (s *Store) Add(productID, qty int) (cart.AddOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Lookup(productID)
	if err != nil {
		return 0, err
	}
	return s.cart.Add(p, qty)
}

// UpdateQuantity replaces the cart quantity for productID. Zero or negative
// quantities remove the entry. Membership is decided by the cart alone: an id
// with no entry reports ErrNotInCart whether or not the catalog knows it.
func (s *Store) UpdateQuantity(productID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Quantity(productID) == 0 {
		return cart.ErrNotInCart
	}
	// Entries only exist for cataloged products, so the lookup cannot fail.
	p, err := s.catalog.Lookup(productID)
	if err != nil {
		return err
	}
	return s.cart.UpdateQuantity(p, qty)
}

// Remove deletes the cart entry for productID.
func (s *Store) Remove(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(productID)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// ItemCount returns the sum of cart entry quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// View returns the cart entries and their snapshot total.
func (s *Store) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{
		Items: s.cart.Entries(),
		Total: s.cart.Total(),
	}
}

// Checkout commits the cart: every entry's quantity is subtracted from its
// product's stock, the bill is the sum of snapshot price times quantity, and
// the cart is cleared. An empty cart fails with ErrEmptyCart and no side
// effects. A non-empty checkout cannot fail: add and update validated each
// quantity against stock, and the store lock has kept that bound valid since.
func (s *Store) Checkout() (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cart.Entries()
	if len(entries) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	total := decimal.Zero
	for _, e := range entries {
		if err := s.catalog.DecrementStock(e.ProductID, e.Quantity); err != nil {
			// Unreachable while every mutation holds s.mu; a failure here means
			// the stock bound was violated somewhere and the engine state is bad.
			panic(fmt.Sprintf("checkout: stock bound broken for product %d: %v", e.ProductID, err))
		}
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	s.cart.Clear()

	return Receipt{
		ID:    uuid.New().String(),
		Total: total,
	}, nil
}

// CheckInvariants scans the combined state and reports the first violation of
// the engine's invariants: non-negative stock and cart quantities within
// stock. Used as a readiness watchdog.
func (s *Store) CheckInvariants() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.catalog.List() {
		if p.Stock < 0 {
			return errors.Errorf("product %d: negative stock %d", p.ID, p.Stock)
		}
	}
	for _, e := range s.cart.Entries() {
		p, err := s.catalog.Lookup(e.ProductID)
		if err != nil {
			return errors.Wrapf(err, "cart entry %d", e.ProductID)
		}
		if e.Quantity > p.Stock {
			return errors.Errorf("product %d: cart quantity %d exceeds stock %d", p.ID, e.Quantity, p.Stock)
		}
	}
	return nil
}
