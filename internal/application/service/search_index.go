package service

import (
	"strings"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/domain/repository"
)

// SearchIndex filters the catalog by product name.
// Nothing is cached: every call re-derives the view from the catalog.
type SearchIndex struct {
	catalog repository.CatalogStore
}

// NewSearchIndex creates a search view over catalog
func NewSearchIndex(catalog repository.CatalogStore) *SearchIndex {
	return &SearchIndex{catalog: catalog}
}

// Filter returns products whose name contains query, ignoring case, in catalog order.
// A blank query returns the whole catalog.
func (s *SearchIndex) Filter(query string) []entity.Product {
	products := s.catalog.List()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products
	}

	matches := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}
