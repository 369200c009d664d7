package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/domain/repository"
	"github.com/sangkips/counter-billing/pkg/apperror"
)

// CounterOptions are the workflow settings of one billing counter.
type CounterOptions struct {
	StoreName    string
	CounterLabel string
	// AutoFinalizeOnPrint completes the sale after a successful print.
	AutoFinalizeOnPrint bool
}

// CartView is the operator's view of the current bill.
type CartView struct {
	BillNumber int                 `json:"bill_number"`
	Title      string              `json:"title"`
	Cart       entity.CartSnapshot `json:"cart"`
}

// ReceiptPreview is a receipt together with its text rendering.
type ReceiptPreview struct {
	Receipt *entity.ReceiptDocument `json:"receipt"`
	Text    string                  `json:"text"`
}

// PrintResult reports a print request. A failed print still carries the receipt.
type PrintResult struct {
	ReceiptPreview
	Printed bool               `json:"printed"`
	Warning string             `json:"warning,omitempty"`
	Sale    *entity.SaleRecord `json:"sale,omitempty"`
}

// LineAdded is the added line and the bill it now belongs to.
type LineAdded struct {
	Line entity.LineItem `json:"line"`
	Cart CartView        `json:"cart"`
}

// SaleCompleted is a finalized sale and the fresh bill that follows it.
type SaleCompleted struct {
	Sale *entity.SaleRecord `json:"sale"`
	Cart CartView           `json:"cart"`
}

// CounterService runs the billing workflow for a single counter. Every
// operation holds one lock for its whole duration, so requests arriving on
// concurrent goroutines are applied one at a time.
type CounterService struct {
	mu        sync.Mutex
	search    *SearchIndex
	cart      *Cart
	finalizer *SaleFinalizer
	formatter *ReceiptFormatter
	printer   *PrinterService
	opts      CounterOptions
	logger    *zap.Logger
}

// NewCounterService creates a counter with an empty cart over catalog.
func NewCounterService(
	catalog repository.CatalogStore,
	finalizer *SaleFinalizer,
	formatter *ReceiptFormatter,
	printerService *PrinterService,
	opts CounterOptions,
	logger *zap.Logger,
) *CounterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterService{
		search:    NewSearchIndex(catalog),
		cart:      NewCart(catalog),
		finalizer: finalizer,
		formatter: formatter,
		printer:   printerService,
		opts:      opts,
		logger:    logger,
	}
}

// Search filters the catalog by name.
func (s *CounterService) Search(query string) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.search.Filter(query)
}

// View returns the current bill.
func (s *CounterService) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

func (s *CounterService) view() CartView {
	bill := s.finalizer.BillNumber()
	return CartView{
		BillNumber: bill,
		Title:      fmt.Sprintf("%s - Bill #%d - Billing System", s.opts.StoreName, bill),
		Cart:       s.cart.Snapshot(),
	}
}

// AddLine adds qty of a product to the current bill.
func (s *CounterService) AddLine(productName string, qty int) (*LineAdded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.AddLine(productName, qty)
	if err != nil {
		s.logger.Debug("Add line rejected",
			zap.String("product", productName),
			zap.Int("quantity", qty),
			zap.String("kind", string(apperror.KindOf(err))),
		)
		return nil, err
	}
	return &LineAdded{Line: line, Cart: s.view()}, nil
}

// Clear empties the current bill and returns its stock to the catalog.
func (s *CounterService) Clear() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.cart.Clear() {
		s.logger.Warn("Stock not returned to catalog",
			zap.String("product", line.ProductName),
			zap.Int("quantity", line.Quantity),
		)
	}
	return s.view()
}

// SetDiscount sets the flat discount on the current bill.
func (s *CounterService) SetDiscount(amount decimal.Decimal) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.SetDiscount(amount); err != nil {
		return CartView{}, err
	}
	return s.view(), nil
}

// Preview formats the current bill without printing or finalizing it.
func (s *CounterService) Preview() (*ReceiptPreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.preview()
}

func (s *CounterService) preview() (*ReceiptPreview, error) {
	if s.cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}
	doc := s.formatter.Format(s.cart.Snapshot(), s.finalizer.BillNumber(), s.finalizer.Now(), s.opts.CounterLabel)
	return &ReceiptPreview{Receipt: doc, Text: RenderText(doc)}, nil
}

// Print prints the current bill. A printer failure is reported as a warning
// alongside the receipt and never finalizes the sale.
func (s *CounterService) Print(ctx context.Context) (*PrintResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.preview()
	if err != nil {
		return nil, err
	}

	result := &PrintResult{ReceiptPreview: *p}
	if err := s.printer.PrintReceipt(p.Receipt); err != nil {
		result.Warning = err.Error()
		return result, nil
	}
	result.Printed = true

	if s.opts.AutoFinalizeOnPrint {
		sale, err := s.finalizer.Finalize(ctx, s.cart)
		if err != nil {
			return nil, err
		}
		result.Sale = sale
	}
	return result, nil
}

// Finalize completes the current bill.
func (s *CounterService) Finalize(ctx context.Context) (*SaleCompleted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.finalizer.Finalize(ctx, s.cart)
	if err != nil {
		return nil, err
	}
	return &SaleCompleted{Sale: sale, Cart: s.view()}, nil
}
