// Package types - Cost breakdown types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

// CurrencyEUR is the only currency the rate table is priced in
const CurrencyEUR Currency = "EUR"

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// LineItemKind identifies which cost component a line item represents
type LineItemKind uint8

const (
	KindBase LineItemKind = iota
	KindPages
	KindLogo
	KindCopywriting
	KindSEO
	KindPhotography
	KindMultilingual
	KindTraining

	// NumLineItemKinds is the number of line item kinds
	NumLineItemKinds = iota
)

var lineItemKindNames = [NumLineItemKinds]string{
	KindBase:         "base",
	KindPages:        "pages",
	KindLogo:         "logo",
	KindCopywriting:  "copywriting",
	KindSEO:          "seo",
	KindPhotography:  "photography",
	KindMultilingual: "multilingual",
	KindTraining:     "training",
}

// String returns the canonical name
func (k LineItemKind) String() string { return enumName(lineItemKindNames[:], int(k)) }

// MarshalText implements encoding.TextMarshaler
func (k LineItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// LineItem is a single billable entry of a breakdown
type LineItem struct {
	// Kind is the cost component
	Kind LineItemKind `json:"kind"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Quantity is the billed count (pages, hours, sessions...)
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the unit price, with any multiplier applied
	Rate decimal.Decimal `json:"rate"`

	// Multiplier is the complexity factor folded into Rate, if any
	Multiplier string `json:"multiplier,omitempty"`

	// Amount is the calculated cost (Quantity * Rate)
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown is an itemized quote derived from an option selection.
// It is recomputed on every change and never mutated after creation.
type Breakdown struct {
	// QuoteID is derived from the selection, equal selections share an ID
	QuoteID string `json:"quote_id"`

	// Selection is the normalized selection that was priced
	Selection OptionSelection `json:"selection"`

	// Items are the non-zero cost components in display order
	Items []LineItem `json:"items"`

	// OneOffSubtotal is the sum of all one-off components
	OneOffSubtotal decimal.Decimal `json:"one_off_subtotal"`

	// MaintenanceMonthly is the monthly maintenance fee
	MaintenanceMonthly decimal.Decimal `json:"maintenance_monthly"`

	// HostingMonthly is the monthly hosting fee
	HostingMonthly decimal.Decimal `json:"hosting_monthly"`

	// FirstMonthTotal is subtotal + maintenance + hosting
	FirstMonthTotal decimal.Decimal `json:"first_month_total"`

	// Currency is the quote currency
	Currency Currency `json:"currency"`
}

// MonthlyOngoing returns the recurring monthly cost
func (b *Breakdown) MonthlyOngoing() decimal.Decimal {
	return b.MaintenanceMonthly.Add(b.HostingMonthly)
}

// Item returns the line item of the given kind, if present
func (b *Breakdown) Item(kind LineItemKind) (LineItem, bool) {
	for _, item := range b.Items {
		if item.Kind == kind {
			return item, true
		}
	}
	return LineItem{}, false
}
