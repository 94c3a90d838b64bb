package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/store"
)

// writeJSON renders a JSON body built by fill with the given status code.
func writeJSON(w http.ResponseWriter, status int, fill func(e *jx.Encoder)) {
	var e jx.Encoder
	fill(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeStatus renders the {"status": "..."} success shape.
func writeStatus(w http.ResponseWriter, status string) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("status")
		e.Str(status)
		e.ObjEnd()
	})
}

// writeErrorBody renders the {"error": "..."} shape.
func writeErrorBody(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("error")
		e.Str(msg)
		e.ObjEnd()
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeErrorBody(w, http.StatusBadRequest, msg)
}

// writeError classifies a domain error and maps it to a status code while
// keeping the canonical error message as the body. The original API returned
// 200 for every error kind; status codes are upgraded here, the bodies stay.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, catalog.ErrNotFound.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		writeErrorBody(w, http.StatusConflict, catalog.ErrInsufficientStock.Error())
	case errors.Is(err, cart.ErrNotInCart):
		writeErrorBody(w, http.StatusNotFound, cart.ErrNotInCart.Error())
	case errors.Is(err, store.ErrEmptyCart):
		writeErrorBody(w, http.StatusConflict, store.ErrEmptyCart.Error())
	default:
		zctx.From(r.Context()).Error("Unhandled store error", zap.Error(err))
		writeErrorBody(w, http.StatusInternalServerError, "internal error")
	}
}
