package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/pkg/printer"
)

// PrinterService sends receipts to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	formatter   *ReceiptFormatter
	logger      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, formatter *ReceiptFormatter, logger *zap.Logger) *PrinterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		formatter:   formatter,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt renders doc as ESC/POS and sends it to the printer.
func (s *PrinterService) PrintReceipt(doc *entity.ReceiptDocument) error {
	if err := s.printer.Print(RenderESCPOS(doc)); err != nil {
		s.logger.Warn("Printer error",
			zap.Int("bill_number", doc.BillNumber),
			zap.String("printer_type", s.printerType),
			zap.Error(err),
		)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// TestPrint sends a sample receipt to the printer.
// Returns the receipt so the handler can show it when the printer is disabled.
func (s *PrinterService) TestPrint(at time.Time) (*entity.ReceiptDocument, error) {
	lines := []entity.LineItem{
		{Serial: 1, ProductName: "Test Item 1", Quantity: 1, UnitRate: decimal.NewFromInt(10)},
		{Serial: 2, ProductName: "Test Item 2", Quantity: 2, UnitRate: decimal.NewFromInt(5)},
	}
	subtotal := decimal.NewFromInt(20)
	snapshot := entity.CartSnapshot{
		Lines: lines,
		Totals: entity.Totals{
			Subtotal: subtotal,
			Discount: decimal.Zero,
			Total:    subtotal,
			Savings:  subtotal.Mul(savingsRate),
		},
		TotalQuantity: 3,
	}

	doc := s.formatter.Format(snapshot, 0, at, "TEST")
	if err := s.printer.Print(RenderESCPOS(doc)); err != nil {
		return doc, fmt.Errorf("test print failed: %w", err)
	}
	return doc, nil
}
