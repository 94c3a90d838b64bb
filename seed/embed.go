// Package seed provides the embedded product catalog seed.
package seed

import (
	_ "embed"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/catalog"
)

//go:embed products.json
var productsJSON []byte

type productJSON struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	Emoji    string          `json:"emoji"`
}

// Products decodes the embedded seed into catalog seeds, preserving file order.
func Products() ([]catalog.Seed, error) {
	var rows []productJSON
	if err := json.Unmarshal(productsJSON, &rows); err != nil {
		return nil, errors.Wrap(err, "decode products seed")
	}

	seeds := make([]catalog.Seed, len(rows))
	for i, row := range rows {
		seeds[i] = catalog.Seed{
			ID:       row.ID,
			Name:     row.Name,
			Price:    row.Price,
			Stock:    row.Stock,
			Category: row.Category,
			Emoji:    row.Emoji,
		}
	}
	return seeds, nil
}
