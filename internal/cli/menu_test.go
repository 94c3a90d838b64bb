package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/store"
)

func newTestMenu(t *testing.T, script string) (*store.Store, *strings.Builder) {
	t.Helper()
	s, err := store.New([]catalog.Seed{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 5},
		{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("49.99"), Stock: 30},
	})
	require.NoError(t, err)

	var out strings.Builder
	menu := New(s, strings.NewReader(script), &out)
	require.NoError(t, menu.Run(context.Background()))
	return s, &out
}

func TestMenu_DisplayProducts(t *testing.T) {
	_, out := newTestMenu(t, "1 9")

	assert.Contains(t, out.String(), "--- Available Products ---")
	assert.Contains(t, out.String(), "ID: 1 | Name: Laptop | Price: 999.99 | Stock: 5")
}

func TestMenu_AddAndViewCart(t *testing.T) {
	s, out := newTestMenu(t, "2 1 3 5 9")

	assert.Contains(t, out.String(), "Item added to cart.")
	assert.Contains(t, out.String(), "Laptop | Qty: 3 | Price: 999.99 | Cost: 2999.97")
	assert.Contains(t, out.String(), "Total Amount: 2999.97")
	assert.Equal(t, 3, s.ItemCount())
}

func TestMenu_AddMergeReportsUpdate(t *testing.T) {
	_, out := newTestMenu(t, "2 1 2 2 1 2 9")

	assert.Contains(t, out.String(), "Item added to cart.")
	assert.Contains(t, out.String(), "Cart updated successfully.")
}

func TestMenu_AddErrors(t *testing.T) {
	_, out := newTestMenu(t, "2 99 1 2 1 6 9")

	assert.Contains(t, out.String(), "Product not found!")
	assert.Contains(t, out.String(), "Insufficient stock!")
}

func TestMenu_RemoveAndUpdate(t *testing.T) {
	s, out := newTestMenu(t, "2 1 3 4 1 5 3 1 3 1 9")

	assert.Contains(t, out.String(), "Quantity updated.")
	assert.Contains(t, out.String(), "Item removed from cart.")
	assert.Contains(t, out.String(), "Item not found in cart.")
	assert.Zero(t, s.ItemCount())
}

func TestMenu_UpdateToZeroRemoves(t *testing.T) {
	s, out := newTestMenu(t, "2 1 3 4 1 0 9")

	assert.Contains(t, out.String(), "Item removed (quantity zero).")
	assert.Zero(t, s.ItemCount())
}

func TestMenu_ClearAndCount(t *testing.T) {
	_, out := newTestMenu(t, "2 1 3 2 2 5 7 6 7 9")

	assert.Contains(t, out.String(), "Total items in cart: 8")
	assert.Contains(t, out.String(), "Cart cleared successfully.")
	assert.Contains(t, out.String(), "Total items in cart: 0")
}

func TestMenu_Checkout(t *testing.T) {
	s, out := newTestMenu(t, "2 1 5 8 8 9")

	assert.Contains(t, out.String(), "Final Amount Payable: 4999.95")
	assert.Contains(t, out.String(), "Thank you for shopping!")
	assert.Contains(t, out.String(), "Cart is empty!")
	assert.Zero(t, s.Products()[0].Stock)
}

func TestMenu_InvalidChoice(t *testing.T) {
	_, out := newTestMenu(t, "42 x 9")

	assert.Contains(t, out.String(), "Invalid choice!")
}

func TestMenu_EOFExits(t *testing.T) {
	// Input ends without an explicit exit choice.
	_, out := newTestMenu(t, "1")

	assert.Contains(t, out.String(), "--- Available Products ---")
}
