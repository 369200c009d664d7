package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineItem is one aggregated product in the current sale.
type LineItem struct {
	Serial      int             `json:"serial"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
}

// Amount is UnitRate × Quantity.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitRate.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// MarshalJSON adds the derived amount and renders money with two decimals.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Serial      int    `json:"serial"`
		ProductName string `json:"product_name"`
		Quantity    int    `json:"quantity"`
		UnitRate    string `json:"unit_rate"`
		Amount      string `json:"amount"`
	}{
		Serial:      li.Serial,
		ProductName: li.ProductName,
		Quantity:    li.Quantity,
		UnitRate:    li.UnitRate.StringFixed(2),
		Amount:      li.Amount().StringFixed(2),
	})
}

// Totals are always derived from the current line items.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Savings  decimal.Decimal
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"subtotal": t.Subtotal.StringFixed(2),
		"discount": t.Discount.StringFixed(2),
		"total":    t.Total.StringFixed(2),
		"savings":  t.Savings.StringFixed(2),
	})
}

// CartSnapshot is an immutable copy of a cart, the input to receipt formatting.
type CartSnapshot struct {
	Lines         []LineItem `json:"lines"`
	Totals        Totals     `json:"totals"`
	TotalQuantity int        `json:"total_quantity"`
}

// ItemCount is the number of distinct line items.
func (s CartSnapshot) ItemCount() int {
	return len(s.Lines)
}
