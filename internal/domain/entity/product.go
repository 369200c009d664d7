package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. Name is the unique key; only AvailableQty
// changes after the catalog is loaded.
type Product struct {
	Name         string          `json:"name"`
	AvailableQty int             `json:"available_qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// MarshalJSON renders the price with two decimals for display.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name         string `json:"name"`
		AvailableQty int    `json:"available_qty"`
		UnitPrice    string `json:"unit_price"`
	}{
		Name:         p.Name,
		AvailableQty: p.AvailableQty,
		UnitPrice:    p.UnitPrice.StringFixed(2),
	})
}

// RawCatalogRecord is one unparsed row handed over by catalog ingestion.
type RawCatalogRecord struct {
	Name     string
	Quantity string
	Price    string
}

// CatalogLoadReport summarizes a catalog load.
type CatalogLoadReport struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}
