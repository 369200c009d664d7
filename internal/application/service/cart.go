package service

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/domain/repository"
	"github.com/sangkips/counter-billing/pkg/apperror"
)

// savingsRate is the flat share of the subtotal shown as "You have saved".
// It is informational only and never deducted.
var savingsRate = decimal.New(1, -1)

// Cart is the in-progress sale. Every quantity in the cart is reserved in the
// catalog, so for each product:
//
//	stock at load = catalog stock + quantity in cart
//
// Cart is not safe for concurrent use; CounterService serializes access.
type Cart struct {
	catalog  repository.CatalogStore
	lines    []entity.LineItem
	index    map[string]int // product name -> position in lines
	discount decimal.Decimal
}

// NewCart creates an empty cart that reserves stock from catalog
func NewCart(catalog repository.CatalogStore) *Cart {
	return &Cart{
		catalog: catalog,
		index:   make(map[string]int),
	}
}

// AddLine reserves qty of the named product and adds it to the cart, merging
// into the existing line if the product is already present. On error nothing
// changes in the cart or the catalog.
func (c *Cart) AddLine(productName string, qty int) (entity.LineItem, error) {
	product, ok := c.catalog.Find(productName)
	if !ok {
		return entity.LineItem{}, apperror.NewProductNotFoundError(productName)
	}

	if qty <= 0 {
		return entity.LineItem{}, apperror.ErrInvalidQuantity
	}

	reserved, available := c.catalog.Reserve(productName, qty)
	if !reserved {
		return entity.LineItem{}, apperror.NewInsufficientStockError(productName, available)
	}

	if i, exists := c.index[productName]; exists {
		c.lines[i].Quantity += qty
	} else {
		c.index[productName] = len(c.lines)
		c.lines = append(c.lines, entity.LineItem{
			Serial:      len(c.lines) + 1,
			ProductName: productName,
			Quantity:    qty,
			UnitRate:    product.UnitPrice,
		})
	}
	c.renumber()

	return c.lines[c.index[productName]], nil
}

// renumber makes serials exactly 1..N in insertion order.
func (c *Cart) renumber() {
	for i := range c.lines {
		c.lines[i].Serial = i + 1
	}
}

// Clear returns every reserved quantity to the catalog and empties the cart.
// Lines the catalog refused to take back are returned; their stock is lost.
func (c *Cart) Clear() []entity.LineItem {
	var unreleased []entity.LineItem
	for _, line := range c.lines {
		if !c.catalog.Release(line.ProductName, line.Quantity) {
			unreleased = append(unreleased, line)
		}
	}
	c.reset()
	return unreleased
}

// reset empties the cart without touching the catalog. Used once a sale is
// finalized and its reservations become permanent.
func (c *Cart) reset() {
	c.lines = nil
	c.index = make(map[string]int)
	c.discount = decimal.Zero
}

// SetDiscount sets the flat discount subtracted from the subtotal.
func (c *Cart) SetDiscount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperror.ErrInvalidDiscount
	}
	c.discount = amount
	return nil
}

func (c *Cart) Discount() decimal.Decimal {
	return c.discount
}

// Totals derives subtotal, total and savings from the current lines.
// Total is not clamped: a discount above the subtotal yields a negative total.
func (c *Cart) Totals() entity.Totals {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Amount())
	}
	return entity.Totals{
		Subtotal: subtotal,
		Discount: c.discount,
		Total:    subtotal.Sub(c.discount),
		Savings:  subtotal.Mul(savingsRate),
	}
}

// Lines returns a copy of the line items in serial order.
func (c *Cart) Lines() []entity.LineItem {
	out := make([]entity.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productName, if present.
func (c *Cart) Line(productName string) (entity.LineItem, bool) {
	i, ok := c.index[productName]
	if !ok {
		return entity.LineItem{}, false
	}
	return c.lines[i], true
}

func (c *Cart) ItemCount() int {
	return len(c.lines)
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Snapshot copies the cart for formatting or finalization.
func (c *Cart) Snapshot() entity.CartSnapshot {
	return entity.CartSnapshot{
		Lines:         c.Lines(),
		Totals:        c.Totals(),
		TotalQuantity: c.TotalQuantity(),
	}
}
