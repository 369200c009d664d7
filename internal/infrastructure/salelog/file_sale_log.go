// Package salelog appends finalized sales to a plain-text log.
package salelog

import (
	"context"
	"fmt"
	"os"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/counter-billing/internal/domain/repository"
)

// TimestampLayout is the timestamp format of every log line.
const TimestampLayout = "2006-01-02 15:04:05"

type fileSaleLog struct {
	path     string
	currency string
}

// NewFileSaleLog appends one line per sale to path, creating it if needed.
// Each append opens the file with O_APPEND; there is no read-modify-write.
func NewFileSaleLog(path, currency string) domainRepo.SaleLog {
	return &fileSaleLog{path: path, currency: currency}
}

func (l *fileSaleLog) Append(ctx context.Context, record *entity.SaleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("salelog: open %s: %w", l.path, err)
	}

	if _, err := f.WriteString(FormatLine(record, l.currency) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("salelog: write %s: %w", l.path, err)
	}
	return f.Close()
}

// FormatLine renders the log line for a sale:
//
//	2025-01-02 15:04:05 | Bill #7 | Total: ₹37.50 | Items: 1
func FormatLine(record *entity.SaleRecord, currency string) string {
	return fmt.Sprintf("%s | Bill #%d | Total: %s%s | Items: %d",
		record.Timestamp.Format(TimestampLayout),
		record.BillNumber,
		currency,
		record.Total.StringFixed(2),
		record.ItemCount,
	)
}
