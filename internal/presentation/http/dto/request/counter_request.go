package request

import "github.com/shopspring/decimal"

// CatalogSearchRequest is the query string of a catalog search.
type CatalogSearchRequest struct {
	Query   string `form:"q"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// AddLineRequest adds a quantity of a product to the current bill.
// Quantity is validated by the cart so that an unknown product is reported first.
type AddLineRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

// SetDiscountRequest sets the flat discount on the current bill.
// Amount accepts a JSON number or string, e.g. 5 or "5.50".
type SetDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
