// Package handler translates HTTP requests into store operations and renders
// the results as JSON. The wire format is inherited from the original
// storefront API: five GET routes, objects with status or error fields.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/store"
)

// Handler serves the storefront API on top of a store engine.
type Handler struct {
	store     *store.Store
	adds      metric.Int64Counter
	checkouts metric.Int64Counter
}

// New constructs a Handler and registers its metric instruments on meter.
func New(s *store.Store, meter metric.Meter) (*Handler, error) {
	adds, err := meter.Int64Counter("storefront.cart.adds",
		metric.WithDescription("Cart add operations, by outcome"))
	if err != nil {
		return nil, errors.Wrap(err, "create adds counter")
	}
	checkouts, err := meter.Int64Counter("storefront.checkouts",
		metric.WithDescription("Completed checkouts"))
	if err != nil {
		return nil, errors.Wrap(err, "create checkouts counter")
	}
	return &Handler{
		store:     s,
		adds:      adds,
		checkouts: checkouts,
	}, nil
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /products", h.Products)
	mux.HandleFunc("GET /add", h.Add)
	mux.HandleFunc("GET /remove", h.Remove)
	mux.HandleFunc("GET /cart", h.Cart)
	mux.HandleFunc("GET /checkout", h.Checkout)
}

// Products lists the catalog as a JSON array. Stock is deliberately omitted;
// it is engine state, not display metadata.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products := h.store.Products()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for _, p := range products {
			e.ObjStart()
			e.FieldStart("id")
			e.Int(p.ID)
			e.FieldStart("name")
			e.Str(p.Name)
			e.FieldStart("price")
			e.RawStr(p.Price.StringFixed(2))
			e.FieldStart("emoji")
			e.Str(p.Emoji)
			e.FieldStart("category")
			e.Str(p.Category)
			e.ObjEnd()
		}
		e.ArrEnd()
	})
}

// Add puts qty units of the product into the cart. qty defaults to 1 when the
// parameter is absent, matching the original query contract.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := queryInt(w, r, "id")
	if !ok {
		return
	}
	qty := 1
	if raw := r.URL.Query().Get("qty"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "qty must be an integer")
			return
		}
		qty = q
	}
	if qty <= 0 {
		writeBadRequest(w, "qty must be positive")
		return
	}

	outcome, err := h.store.Add(id, qty)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := "added"
	if outcome == cart.Merged {
		status = "updated"
	}
	h.adds.Add(r.Context(), 1, metric.WithAttributes(attribute.String("outcome", status)))
	writeStatus(w, status)
}

// Remove deletes the product's cart entry.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := queryInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.store.Remove(id); err != nil {
		writeError(w, r, err)
		return
	}
	writeStatus(w, "removed")
}

// Cart renders the current entries and their snapshot total.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	view := h.store.View()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("items")
		e.ArrStart()
		for _, item := range view.Items {
			e.ObjStart()
			e.FieldStart("id")
			e.Int(item.ProductID)
			e.FieldStart("name")
			e.Str(item.Name)
			e.FieldStart("price")
			e.RawStr(item.Price.StringFixed(2))
			e.FieldStart("quantity")
			e.Int(item.Quantity)
			e.ObjEnd()
		}
		e.ArrEnd()
		e.FieldStart("total")
		e.RawStr(view.Total.StringFixed(2))
		e.ObjEnd()
	})
}

// Checkout commits the cart and returns the bill total.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.store.Checkout()
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.checkouts.Add(r.Context(), 1)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("status")
		e.Str("checked_out")
		e.FieldStart("receipt")
		e.Str(receipt.ID)
		e.FieldStart("total")
		e.RawStr(receipt.Total.StringFixed(2))
		e.ObjEnd()
	})
}

// queryInt parses a required integer query parameter, writing a 400 response
// and returning ok=false when it is missing or malformed.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeBadRequest(w, name+" is required")
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeBadRequest(w, name+" must be an integer")
		return 0, false
	}
	return v, true
}
