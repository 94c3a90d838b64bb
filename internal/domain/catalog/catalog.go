// Package catalog owns the set of sellable products and their stock levels.
package catalog

import (
	"sort"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock decrement would drop a
	// product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateID is returned when a seed contains the same product id twice.
	ErrDuplicateID = errors.New("duplicate product id")
)

// Product represents a catalog item available for purchase. Stock is the only
// mutable field; all mutations go through Catalog.DecrementStock.
type Product struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Stock    int
	Category string
	Emoji    string
}

// Seed describes one product at catalog construction time.
type Seed struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Stock    int
	Category string
	Emoji    string
}

// Catalog is an id-keyed collection of products. It is not safe for concurrent
// use on its own; callers serialize access (see the store package).
type Catalog struct {
	byID map[int]*Product
	ids  []int // sorted, for stable listing
}

// New builds a catalog from the seed list. Duplicate ids, negative prices and
// negative stock are configuration errors and rejected outright.
func New(seeds []Seed) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[int]*Product, len(seeds)),
		ids:  make([]int, 0, len(seeds)),
	}
	for _, s := range seeds {
		if _, ok := c.byID[s.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateID, "product %d", s.ID)
		}
		if s.Price.IsNegative() {
			return nil, errors.Errorf("product %d: negative price %s", s.ID, s.Price)
		}
		if s.Stock < 0 {
			return nil, errors.Errorf("product %d: negative stock %d", s.ID, s.Stock)
		}
		c.byID[s.ID] = &Product{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Stock:    s.Stock,
			Category: s.Category,
			Emoji:    s.Emoji,
		}
		c.ids = append(c.ids, s.ID)
	}
	sort.Ints(c.ids)
	return c, nil
}

// Lookup returns the product with the given id, or ErrNotFound.
func (c *Catalog) Lookup(id int) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns a snapshot of all products ordered by id. The returned slice
// holds copies, so callers cannot mutate catalog state through it.
func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, *c.byID[id])
	}
	return out
}

// Len reports the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// DecrementStock subtracts amount from the product's stock. It fails with
// ErrNotFound for unknown ids and ErrInsufficientStock when the decrement
// would underflow; on failure the stock is left untouched.
func (c *Catalog) DecrementStock(id, amount int) error {
	p, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}
	if amount > p.Stock {
		return errors.Wrapf(ErrInsufficientStock, "product %d: want %d, have %d", id, amount, p.Stock)
	}
	p.Stock -= amount
	return nil
}
