// Package cart holds the session's pending line items. Each entry carries a
// name/price snapshot captured when the product was first added, deliberately
// insulated from later catalog changes.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/catalog"
)

// ErrNotInCart is returned when an operation references a product with no
// existing cart entry.
var ErrNotInCart = errors.New("not in cart")

// Entry is a single line item. Quantity is always >= 1; an entry that would
// drop to zero is removed instead.
type Entry struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// AddOutcome distinguishes a fresh entry from a merge into an existing one.
// The two cases are user-visible ("added" vs "updated").
type AddOutcome int

const (
	Added AddOutcome = iota
	Merged
)

// Cart is an insertion-ordered collection of entries, at most one per product.
// It is not safe for concurrent use on its own; the store serializes access.
type Cart struct {
	entries []Entry
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID int) int {
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into the existing entry for p, or appends a new entry with a
// name/price snapshot of p. qty must be positive and the combined quantity
// must not exceed the product's current stock; on failure the cart is
// unchanged.
func (c *Cart) Add(p *catalog.Product, qty int) (AddOutcome, error) {
	if qty <= 0 {
		return 0, errors.Errorf("product %d: non-positive quantity %d", p.ID, qty)
	}
	if i := c.find(p.ID); i >= 0 {
		if c.entries[i].Quantity+qty > p.Stock {
			return 0, errors.Wrapf(catalog.ErrInsufficientStock,
				"product %d: cart %d + %d exceeds stock %d", p.ID, c.entries[i].Quantity, qty, p.Stock)
		}
		c.entries[i].Quantity += qty
		return Merged, nil
	}
	if qty > p.Stock {
		return 0, errors.Wrapf(catalog.ErrInsufficientStock,
			"product %d: want %d, have %d", p.ID, qty, p.Stock)
	}
	c.entries = append(c.entries, Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
	})
	return Added, nil
}

// UpdateQuantity replaces the entry's quantity. A quantity of zero or below
// removes the entry; that is the documented way to say "remove", not an error.
func (c *Cart) UpdateQuantity(p *catalog.Product, qty int) error {
	i := c.find(p.ID)
	if i < 0 {
		return ErrNotInCart
	}
	if qty <= 0 {
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return nil
	}
	if qty > p.Stock {
		return errors.Wrapf(catalog.ErrInsufficientStock,
			"product %d: want %d, have %d", p.ID, qty, p.Stock)
	}
	c.entries[i].Quantity = qty
	return nil
}

// Remove deletes the entry for productID, or reports ErrNotInCart.
func (c *Cart) Remove(productID int) error {
	i := c.find(productID)
	if i < 0 {
		return ErrNotInCart
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return nil
}

// Clear removes every entry. It always succeeds, including on an empty cart.
func (c *Cart) Clear() {
	c.entries = c.entries[:0]
}

// Len reports the number of distinct entries.
func (c *Cart) Len() int {
	return len(c.entries)
}

// ItemCount sums entry quantities: two entries of quantity 3 and 5 yield 8.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.entries {
		count += c.entries[i].Quantity
	}
	return count
}

// Total sums snapshot price times quantity over all entries.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.entries {
		e := &c.entries[i]
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// Entries returns a snapshot of the entries in insertion order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Quantity returns the cart quantity for productID, zero when absent.
func (c *Cart) Quantity(productID int) int {
	if i := c.find(productID); i >= 0 {
		return c.entries[i].Quantity
	}
	return 0
}
