package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is emitted once per finalized sale and never mutated afterwards.
type SaleRecord struct {
	ID            uuid.UUID       `json:"id"`
	BillNumber    int             `json:"bill_number"`
	Timestamp     time.Time       `json:"timestamp"`
	Subtotal      decimal.Decimal `json:"-"`
	Discount      decimal.Decimal `json:"-"`
	Total         decimal.Decimal `json:"-"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
}

// MarshalJSON renders money with two decimals for API responses
func (r SaleRecord) MarshalJSON() ([]byte, error) {
	type Alias SaleRecord
	return json.Marshal(&struct {
		Alias
		Subtotal string `json:"subtotal"`
		Discount string `json:"discount"`
		Total    string `json:"total"`
	}{
		Alias:    Alias(r),
		Subtotal: r.Subtotal.StringFixed(2),
		Discount: r.Discount.StringFixed(2),
		Total:    r.Total.StringFixed(2),
	})
}
