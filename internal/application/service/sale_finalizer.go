package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/domain/repository"
	"github.com/sangkips/counter-billing/pkg/apperror"
)

// SaleFinalizer commits carts to the sale log and owns the bill number.
type SaleFinalizer struct {
	saleLog  repository.SaleLog
	logger   *zap.Logger
	now      func() time.Time
	nextBill int
}

// NewSaleFinalizer creates a finalizer whose first bill is startBill (1 if not positive).
func NewSaleFinalizer(saleLog repository.SaleLog, startBill int, logger *zap.Logger) *SaleFinalizer {
	if startBill < 1 {
		startBill = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleFinalizer{
		saleLog:  saleLog,
		logger:   logger,
		now:      time.Now,
		nextBill: startBill,
	}
}

// WithClock replaces the time source, for tests.
func (f *SaleFinalizer) WithClock(now func() time.Time) *SaleFinalizer {
	f.now = now
	return f
}

// BillNumber is the number the next finalized sale will get.
func (f *SaleFinalizer) BillNumber() int {
	return f.nextBill
}

// Now returns the finalizer's current time.
func (f *SaleFinalizer) Now() time.Time {
	return f.now()
}

// Finalize records the cart as a sale, empties it and advances the bill number.
// Reserved stock stays consumed. A sale-log failure is logged and does not fail
// the sale.
func (f *SaleFinalizer) Finalize(ctx context.Context, cart *Cart) (*entity.SaleRecord, error) {
	if cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	totals := cart.Totals()
	record := &entity.SaleRecord{
		ID:            uuid.New(),
		BillNumber:    f.nextBill,
		Timestamp:     f.now(),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		ItemCount:     cart.ItemCount(),
		TotalQuantity: cart.TotalQuantity(),
	}

	if err := f.saleLog.Append(ctx, record); err != nil {
		appErr := apperror.NewLogAppendFailedError(record.BillNumber, err)
		f.logger.Error("Sale log append failed",
			zap.String("kind", string(appErr.Kind)),
			zap.Int("bill_number", record.BillNumber),
			zap.String("total", record.Total.StringFixed(2)),
			zap.Error(err),
		)
	}

	cart.reset()
	f.nextBill++

	f.logger.Info("Sale finalized",
		zap.Int("bill_number", record.BillNumber),
		zap.String("sale_id", record.ID.String()),
		zap.String("total", record.Total.StringFixed(2)),
		zap.Int("items", record.ItemCount),
	)

	return record, nil
}
