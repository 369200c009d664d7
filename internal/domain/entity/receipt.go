package entity

// ReceiptHeader holds the store and counter details printed on every receipt.
type ReceiptHeader struct {
	StoreName     string   `json:"store_name"`
	Address       []string `json:"address,omitempty"`
	TaxID         string   `json:"tax_id,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Cashier       string   `json:"cashier,omitempty"`
	CurrencyLabel string   `json:"currency_label,omitempty"`
}

// ReceiptSection groups receipt lines.
type ReceiptSection string

const (
	SectionHeader  ReceiptSection = "header"
	SectionItems   ReceiptSection = "items"
	SectionTotals  ReceiptSection = "totals"
	SectionSavings ReceiptSection = "savings"
	SectionFooter  ReceiptSection = "footer"
)

// Align is the horizontal placement of a receipt line.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// ReceiptLine is one printed line. Text is already laid out for the receipt width,
// except that centered lines are positioned by the renderer.
type ReceiptLine struct {
	Section ReceiptSection `json:"section"`
	Text    string         `json:"text"`
	Align   Align          `json:"align"`
	Bold    bool           `json:"bold,omitempty"`
	Large   bool           `json:"large,omitempty"`
	// Rule marks a full-width separator; Text holds its text form.
	Rule bool `json:"rule,omitempty"`
}

// ReceiptDocument is the single structured receipt representation. Preview,
// print and any other output are renderings of it.
// It is NOT persisted.
type ReceiptDocument struct {
	Width      int           `json:"width"`
	BillNumber int           `json:"bill_number"`
	Lines      []ReceiptLine `json:"lines"`
}
