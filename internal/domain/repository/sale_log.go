package repository

import (
	"context"

	"github.com/sangkips/counter-billing/internal/domain/entity"
)

// SaleLog is the append-only sink for finalized sales.
type SaleLog interface {
	Append(ctx context.Context, record *entity.SaleRecord) error
}
