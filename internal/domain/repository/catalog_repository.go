package repository

import (
	"context"

	"github.com/sangkips/counter-billing/internal/domain/entity"
)

// CatalogStore holds the sellable products and their available stock.
type CatalogStore interface {
	// Load replaces the catalog. Invalid records are skipped, never fatal.
	Load(records []entity.RawCatalogRecord) entity.CatalogLoadReport
	// Find returns a copy of the product with exactly this name.
	Find(name string) (entity.Product, bool)
	// List returns copies of all products in load order.
	List() []entity.Product
	// Reserve decrements stock by qty only if at least qty is available.
	// available is the stock after the call.
	Reserve(name string, qty int) (ok bool, available int)
	// Release increments stock by qty. Returns false for an unknown product.
	Release(name string, qty int) bool
}

// CatalogSource supplies raw catalog records, e.g. from a delimited file.
type CatalogSource interface {
	// Records returns all rows in source order. A source that cannot be
	// located returns an apperror of kind CatalogUnavailable.
	Records(ctx context.Context) ([]entity.RawCatalogRecord, error)
	// Describe names the source for log messages.
	Describe() string
}
