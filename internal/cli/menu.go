// Package cli implements the interactive storefront menu on top of the store
// engine. It reads whitespace-separated integers from its input stream and
// writes formatted text lines, one operation per menu choice.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/store"
)

// Menu drives the interactive session. Input and output are injected so the
// loop is testable without a terminal.
type Menu struct {
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
}

// New builds a menu over the given store and streams.
func New(s *store.Store, in io.Reader, out io.Writer) *Menu {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Menu{
		store: s,
		in:    sc,
		out:   out,
	}
}

// Run loops until the user picks exit, the input stream ends, or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.readInt()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(m.out, "Invalid choice!")
			continue
		}

		switch choice {
		case 1:
			m.displayProducts()
		case 2:
			m.addToCart()
		case 3:
			m.removeFromCart()
		case 4:
			m.updateQuantity()
		case 5:
			m.displayCart()
		case 6:
			m.store.Clear()
			fmt.Fprintln(m.out, "Cart cleared successfully.")
		case 7:
			fmt.Fprintf(m.out, "Total items in cart: %d\n", m.store.ItemCount())
		case 8:
			m.checkout()
		case 9:
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice!")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, "\n========= STOREFRONT MENU =========\n"+
		"1. Display Products\n"+
		"2. Add to Cart\n"+
		"3. Remove from Cart\n"+
		"4. Update Cart Quantity\n"+
		"5. View Cart\n"+
		"6. Clear Cart\n"+
		"7. Cart Item Count\n"+
		"8. Checkout\n"+
		"9. Exit\n"+
		"Enter choice: ")
}

// readInt consumes the next whitespace-separated token as an integer.
func (m *Menu) readInt() (int, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	v, err := strconv.Atoi(m.in.Text())
	if err != nil {
		return 0, errors.Wrap(err, "parse int")
	}
	return v, nil
}

func (m *Menu) displayProducts() {
	fmt.Fprintln(m.out, "\n--- Available Products ---")
	for _, p := range m.store.Products() {
		fmt.Fprintf(m.out, "ID: %d | Name: %s | Price: %s | Stock: %d\n",
			p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
}

func (m *Menu) addToCart() {
	fmt.Fprint(m.out, "Enter Product ID and Quantity: ")
	id, err := m.readInt()
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}
	qty, err := m.readInt()
	if err != nil || qty <= 0 {
		fmt.Fprintln(m.out, "Invalid quantity!")
		return
	}

	outcome, err := m.store.Add(id, qty)
	switch {
	case err != nil:
		m.printError(err)
	case outcome == cart.Merged:
		fmt.Fprintln(m.out, "Cart updated successfully.")
	default:
		fmt.Fprintln(m.out, "Item added to cart.")
	}
}

func (m *Menu) removeFromCart() {
	fmt.Fprint(m.out, "Enter Product ID: ")
	id, err := m.readInt()
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}
	if err := m.store.Remove(id); err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintln(m.out, "Item removed from cart.")
}

func (m *Menu) updateQuantity() {
	fmt.Fprint(m.out, "Enter Product ID and New Quantity: ")
	id, err := m.readInt()
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}
	qty, err := m.readInt()
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}

	if err := m.store.UpdateQuantity(id, qty); err != nil {
		m.printError(err)
		return
	}
	if qty <= 0 {
		fmt.Fprintln(m.out, "Item removed (quantity zero).")
		return
	}
	fmt.Fprintln(m.out, "Quantity updated.")
}

func (m *Menu) displayCart() {
	view := m.store.View()
	if len(view.Items) == 0 {
		fmt.Fprintln(m.out, "Cart is empty.")
		return
	}

	fmt.Fprintln(m.out, "\n--- Shopping Cart ---")
	for _, item := range view.Items {
		cost := item.Price.Mul(intDecimal(item.Quantity))
		fmt.Fprintf(m.out, "%s | Qty: %d | Price: %s | Cost: %s\n",
			item.Name, item.Quantity, item.Price.StringFixed(2), cost.StringFixed(2))
	}
	fmt.Fprintf(m.out, "Total Amount: %s\n", view.Total.StringFixed(2))
}

func (m *Menu) checkout() {
	receipt, err := m.store.Checkout()
	if err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintln(m.out, "\n--- Checkout Bill ---")
	fmt.Fprintf(m.out, "Receipt: %s\n", receipt.ID)
	fmt.Fprintf(m.out, "Final Amount Payable: %s\n", receipt.Total.StringFixed(2))
	fmt.Fprintln(m.out, "Thank you for shopping!")
}

func intDecimal(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

func (m *Menu) printError(err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		fmt.Fprintln(m.out, "Product not found!")
	case errors.Is(err, catalog.ErrInsufficientStock):
		fmt.Fprintln(m.out, "Insufficient stock!")
	case errors.Is(err, cart.ErrNotInCart):
		fmt.Fprintln(m.out, "Item not found in cart.")
	case errors.Is(err, store.ErrEmptyCart):
		fmt.Fprintln(m.out, "Cart is empty!")
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}
