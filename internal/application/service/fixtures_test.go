package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/domain/repository"
	infraRepo "github.com/sangkips/counter-billing/internal/infrastructure/repository"
)

var fixedTime = time.Date(2025, 3, 9, 14, 5, 0, 0, time.UTC)

func newCatalog(records ...entity.RawCatalogRecord) repository.CatalogStore {
	store := infraRepo.NewCatalogStore()
	store.Load(records)
	return store
}

func product(name, qty, price string) entity.RawCatalogRecord {
	return entity.RawCatalogRecord{Name: name, Quantity: qty, Price: price}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stockOf(store repository.CatalogStore, name string) int {
	p, ok := store.Find(name)
	if !ok {
		return -1
	}
	return p.AvailableQty
}

type memorySaleLog struct {
	mu      sync.Mutex
	records []*entity.SaleRecord
	err     error
}

func (l *memorySaleLog) Append(_ context.Context, record *entity.SaleRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return l.err
	}
	l.records = append(l.records, record)
	return nil
}

type recordingPrinter struct {
	jobs      [][]byte
	err       error
	connected bool
}

func (p *recordingPrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.connected }

var errPaperOut = errors.New("paper out")

func testHeader() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName:     "AAPNA CHEMIST",
		Address:       []string{"Hathi Bhai Patel Building, Shop No.1/2"},
		TaxID:         "27AEGPG3762F1ZM",
		Phone:         "9890581131",
		Cashier:       "Admin",
		CurrencyLabel: "Rs.",
	}
}
