package repository

import (
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/counter-billing/internal/domain/repository"
)

type catalogStore struct {
	mu       sync.Mutex
	products []entity.Product // load order
	byName   map[string]int   // name -> index into products
}

// NewCatalogStore creates an empty in-memory catalog
func NewCatalogStore() domainRepo.CatalogStore {
	return &catalogStore{byName: make(map[string]int)}
}

func (s *catalogStore) Load(records []entity.RawCatalogRecord) entity.CatalogLoadReport {
	products := make([]entity.Product, 0, len(records))
	byName := make(map[string]int, len(records))
	var report entity.CatalogLoadReport

	for _, rec := range records {
		product, ok := parseRecord(rec)
		if !ok {
			report.Skipped++
			continue
		}
		if _, dup := byName[product.Name]; dup {
			report.Skipped++
			continue
		}
		byName[product.Name] = len(products)
		products = append(products, product)
	}
	report.Loaded = len(products)

	s.mu.Lock()
	s.products = products
	s.byName = byName
	s.mu.Unlock()

	return report
}

// parseRecord validates one raw row. Zero stock is allowed; negative stock and
// negative prices are not.
func parseRecord(rec entity.RawCatalogRecord) (entity.Product, bool) {
	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(rec.Name), `"`))
	if name == "" {
		return entity.Product{}, false
	}

	qty, err := strconv.Atoi(strings.TrimSpace(rec.Quantity))
	if err != nil || qty < 0 {
		return entity.Product{}, false
	}

	// decimal parsing is locale-invariant: '.' is the only decimal separator
	price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
	if err != nil || price.IsNegative() {
		return entity.Product{}, false
	}

	return entity.Product{Name: name, AvailableQty: qty, UnitPrice: price}, true
}

func (s *catalogStore) Find(name string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byName[name]
	if !ok {
		return entity.Product{}, false
	}
	return s.products[i], true
}

func (s *catalogStore) List() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *catalogStore) Reserve(name string, qty int) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byName[name]
	if !ok {
		return false, 0
	}
	p := &s.products[i]
	if qty <= 0 || p.AvailableQty < qty {
		return false, p.AvailableQty
	}
	p.AvailableQty -= qty
	return true, p.AvailableQty
}

func (s *catalogStore) Release(name string, qty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byName[name]
	if !ok || qty <= 0 {
		return false
	}
	s.products[i].AvailableQty += qty
	return true
}
