package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/sangkips/counter-billing/internal/domain/entity"
)

// ReceiptWidth is the character width of an 80mm receipt.
const ReceiptWidth = 48

const (
	nameWidth    = 16
	nameCut      = 13
	receiptDate  = "02/01/06"
	receiptClock = "03:04 PM"
	rulerChar    = '-'
)

var rowHeader = fmt.Sprintf("%-2s %-16s %3s %7s %7s %8s", "Sr", "Item Name", "Qty", "MRP", "Rate", "Amount")

// ReceiptFormatter lays out carts as receipts. It has no side effects.
type ReceiptFormatter struct {
	header entity.ReceiptHeader
}

func NewReceiptFormatter(header entity.ReceiptHeader) *ReceiptFormatter {
	if header.CurrencyLabel == "" {
		header.CurrencyLabel = "Rs."
	}
	if header.Cashier == "" {
		header.Cashier = "Admin"
	}
	return &ReceiptFormatter{header: header}
}

// Header returns the store details the formatter prints.
func (f *ReceiptFormatter) Header() entity.ReceiptHeader {
	return f.header
}

// Format builds the receipt for snapshot. Identical inputs give identical output.
func (f *ReceiptFormatter) Format(snapshot entity.CartSnapshot, billNumber int, at time.Time, counterLabel string) *entity.ReceiptDocument {
	b := &receiptBuilder{}
	totals := snapshot.Totals

	// header
	b.add(entity.SectionHeader, f.header.StoreName, entity.AlignCenter, true, true)
	for _, line := range f.header.Address {
		b.center(entity.SectionHeader, line)
	}
	if contact := f.contactLine(); contact != "" {
		b.center(entity.SectionHeader, contact)
	}
	b.blank(entity.SectionHeader)
	b.add(entity.SectionHeader, "INVOICE", entity.AlignCenter, true, false)
	b.left(entity.SectionHeader, fmt.Sprintf("Bill #: %d    User: %s     Date: %s",
		billNumber, f.header.Cashier, at.Format(receiptDate)))
	b.left(entity.SectionHeader, fmt.Sprintf("Counter: %s  Time: %s", counterLabel, at.Format(receiptClock)))

	// items
	b.rule(entity.SectionItems)
	b.left(entity.SectionItems, rowHeader)
	b.rule(entity.SectionItems)
	for _, line := range snapshot.Lines {
		b.left(entity.SectionItems, ItemRow(line))
	}
	b.rule(entity.SectionItems)

	// totals
	b.left(entity.SectionTotals, fmt.Sprintf("Tot Qty: %d   Tot Items: %d   Coin Adj: 0.00",
		snapshot.TotalQuantity, snapshot.ItemCount()))
	b.blank(entity.SectionTotals)
	if totals.Discount.IsPositive() {
		b.left(entity.SectionTotals, keyValue("Subtotal:", money(totals.Subtotal)))
		b.left(entity.SectionTotals, keyValue("Discount:", money(totals.Discount)))
	}
	b.add(entity.SectionTotals, keyValue("TOTAL:", money(totals.Total)), entity.AlignLeft, true, false)
	b.left(entity.SectionTotals, keyValue("Cash Received:", money(totals.Total)))
	b.left(entity.SectionTotals, keyValue("Balance:", "0.00"))
	b.blank(entity.SectionTotals)

	// savings
	b.left(entity.SectionSavings, fmt.Sprintf("You have saved %s %s", f.header.CurrencyLabel, money(totals.Savings)))
	b.blank(entity.SectionSavings)

	// footer
	b.add(entity.SectionFooter, "THANK YOU..! VISIT AGAIN..!", entity.AlignCenter, true, false)
	b.center(entity.SectionFooter, "RETURNS WILL BE ACCEPTED WITHIN 7 DAYS ONLY")

	return &entity.ReceiptDocument{
		Width:      ReceiptWidth,
		BillNumber: billNumber,
		Lines:      b.lines,
	}
}

func (f *ReceiptFormatter) contactLine() string {
	var parts []string
	if f.header.TaxID != "" {
		parts = append(parts, "GST NO: "+f.header.TaxID)
	}
	if f.header.Phone != "" {
		parts = append(parts, "Mob: "+f.header.Phone)
	}
	return strings.Join(parts, "   ")
}

// ItemRow lays out one table row. MRP and rate both show the captured unit rate.
func ItemRow(line entity.LineItem) string {
	rate := money(line.UnitRate)
	return fmt.Sprintf("%2d %-16s %3d %7s %7s %8s",
		line.Serial, truncateName(line.ProductName), line.Quantity, rate, rate, money(line.Amount()))
}

// truncateName cuts names wider than the name column and marks them with "...".
func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= nameWidth {
		return name
	}
	runes := []rune(name)
	return string(runes[:nameCut]) + "..."
}

// keyValue puts key on the left and value flush right on a receipt-wide line.
func keyValue(key, value string) string {
	gap := ReceiptWidth - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if gap < 1 {
		gap = 1
	}
	return key + strings.Repeat(" ", gap) + value
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type receiptBuilder struct {
	lines []entity.ReceiptLine
}

func (b *receiptBuilder) add(section entity.ReceiptSection, text string, align entity.Align, bold, large bool) {
	b.lines = append(b.lines, entity.ReceiptLine{
		Section: section,
		Text:    text,
		Align:   align,
		Bold:    bold,
		Large:   large,
	})
}

func (b *receiptBuilder) left(section entity.ReceiptSection, text string) {
	b.add(section, text, entity.AlignLeft, false, false)
}

func (b *receiptBuilder) center(section entity.ReceiptSection, text string) {
	b.add(section, text, entity.AlignCenter, false, false)
}

// rule adds a separator of rulerChar across the receipt width.
func (b *receiptBuilder) rule(section entity.ReceiptSection) {
	b.lines = append(b.lines, entity.ReceiptLine{
		Section: section,
		Text:    strings.Repeat(string(rulerChar), ReceiptWidth),
		Align:   entity.AlignLeft,
		Rule:    true,
	})
}

func (b *receiptBuilder) blank(section entity.ReceiptSection) {
	b.left(section, "")
}
