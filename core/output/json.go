package output

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"site-quote/core/types"
)

// JSONFormatter writes machine-readable quotes. Amounts are decimal strings;
// the formatted block carries the localized display strings.
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates an indented JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

type jsonItem struct {
	types.LineItem
	Display string `json:"display"`
}

type jsonTotals struct {
	OneOffSubtotal     decimal.Decimal `json:"one_off_subtotal"`
	MaintenanceMonthly decimal.Decimal `json:"maintenance_monthly"`
	HostingMonthly     decimal.Decimal `json:"hosting_monthly"`
	MonthlyOngoing     decimal.Decimal `json:"monthly_ongoing"`
	FirstMonthTotal    decimal.Decimal `json:"first_month_total"`
}

type jsonQuote struct {
	QuoteID   string                `json:"quote_id"`
	Currency  types.Currency        `json:"currency"`
	Language  string                `json:"language"`
	Selection types.OptionSelection `json:"selection"`
	Items     []jsonItem            `json:"items"`
	Totals    jsonTotals            `json:"totals"`
	Formatted map[string]string     `json:"formatted"`
}

// Render writes the quote as a JSON document
func (f *JSONFormatter) Render(w io.Writer, result *QuoteResult) error {
	b := result.Breakdown
	doc := jsonQuote{
		QuoteID:   b.QuoteID,
		Currency:  b.Currency,
		Language:  result.Lang.String(),
		Selection: b.Selection,
		Items:     make([]jsonItem, 0, len(b.Items)),
		Totals: jsonTotals{
			OneOffSubtotal:     b.OneOffSubtotal,
			MaintenanceMonthly: b.MaintenanceMonthly,
			HostingMonthly:     b.HostingMonthly,
			MonthlyOngoing:     b.MonthlyOngoing(),
			FirstMonthTotal:    b.FirstMonthTotal,
		},
		Formatted: map[string]string{
			"one_off_subtotal":    result.Money(b.OneOffSubtotal),
			"maintenance_monthly": result.Money(b.MaintenanceMonthly),
			"hosting_monthly":     result.Money(b.HostingMonthly),
			"monthly_ongoing":     result.Money(b.MonthlyOngoing()),
			"first_month_total":   result.Money(b.FirstMonthTotal),
		},
	}
	for _, item := range b.Items {
		doc.Items = append(doc.Items, jsonItem{LineItem: item, Display: result.Label(item)})
	}
	return f.encode(w, doc)
}

type jsonRates struct {
	Currency    types.Currency `json:"currency"`
	Flat        []namedRate    `json:"flat"`
	Complexity  []namedRate    `json:"complexity"`
	SEO         []namedRate    `json:"seo"`
	Maintenance []namedRate    `json:"maintenance"`
	Hosting     []namedRate    `json:"hosting"`
}

// RenderRates writes the rate table as a JSON document
func (f *JSONFormatter) RenderRates(w io.Writer, result *RatesResult) error {
	r := &result.Rates
	return f.encode(w, jsonRates{
		Currency:    r.Currency,
		Flat:        flatRates(r),
		Complexity:  complexityRates(r),
		SEO:         seoRates(r),
		Maintenance: planRates(r.MaintenanceRate),
		Hosting:     planRates(r.HostingRate),
	})
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(v)
}
