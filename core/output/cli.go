package output

import (
	"fmt"
	"io"

	"site-quote/core/i18n"
	"site-quote/core/ui"
)

// CLIFormatter writes quotes as colored terminal tables
type CLIFormatter struct{}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the itemized quote, totals and summary box
func (f *CLIFormatter) Render(w io.Writer, result *QuoteResult) error {
	out := ui.NewWriter(w, result.NoColor)
	b := result.Breakdown
	lang := result.Lang

	out.Header(i18n.T(lang, i18n.KeyTitle))

	if result.Details {
		renderSelection(out, result)
		out.Println("")
	}

	out.SubHeader(i18n.T(lang, i18n.KeyEstimate))
	var tbl *ui.Table
	if result.Details {
		tbl = out.NewTable("", "", "")
		tbl.AlignRight(1, 2)
		for _, item := range b.Items {
			tbl.AddRow(result.Label(item), fmt.Sprintf("%s × %s", item.Quantity, result.Money(item.Rate)), result.Money(item.Amount))
		}
	} else {
		tbl = out.NewTable("", "")
		tbl.AlignRight(1)
		for _, item := range b.Items {
			tbl.AddRow(result.Label(item), result.Money(item.Amount))
		}
	}
	tbl.Render()
	out.Println("")

	totals := out.NewTable("", "")
	totals.AlignRight(1)
	totals.AddRow(i18n.T(lang, i18n.KeyOneOffSubtotal), result.Money(b.OneOffSubtotal))
	totals.AddRow(i18n.T(lang, i18n.KeyMaintMonthly), result.Money(b.MaintenanceMonthly))
	totals.AddRow(i18n.T(lang, i18n.KeyHostMonthly), result.Money(b.HostingMonthly))
	totals.AddRow(i18n.T(lang, i18n.KeyFirstMonthTotal), result.Money(b.FirstMonthTotal))
	totals.Render()

	if b.Selection.Languages > 1 {
		out.Println("")
		out.Info("%s", i18n.T(lang, i18n.KeyFirstLangNote))
	}

	summary := out.NewSummary(i18n.T(lang, i18n.KeyIncludesTitle))
	summary.Add(ui.SummaryRow{Label: i18n.T(lang, i18n.KeyProjectOneOff), Value: result.Money(b.OneOffSubtotal)})
	summary.Add(ui.SummaryRow{Label: i18n.T(lang, i18n.KeyMonthlyOngoing), Value: result.Money(b.MonthlyOngoing())})
	summary.Add(ui.SummaryRow{Label: i18n.T(lang, i18n.KeyMaintMonthly), Value: result.Money(b.MaintenanceMonthly), Sub: true})
	summary.Add(ui.SummaryRow{Label: i18n.T(lang, i18n.KeyHostMonthly), Value: result.Money(b.HostingMonthly), Sub: true})
	summary.Add(ui.SummaryRow{Label: i18n.T(lang, i18n.KeyFirstMonthTotal), Value: result.Money(b.FirstMonthTotal), Highlight: true})
	summary.Note = i18n.T(lang, i18n.KeyDisclaimer)
	summary.Render()

	out.Println("")
	out.Println("%s", out.Color(ui.Dim, "quote "+b.QuoteID))
	return nil
}

func renderSelection(out *ui.Writer, result *QuoteResult) {
	tbl := out.NewTable("", "")
	for _, row := range result.SelectionRows() {
		tbl.AddRow(row[0], row[1])
	}
	tbl.Render()
}

// RenderRates writes the rate table
func (f *CLIFormatter) RenderRates(w io.Writer, result *RatesResult) error {
	out := ui.NewWriter(w, result.NoColor)
	r := &result.Rates
	money := func(n namedRate) string { return i18n.Money(result.Lang, n.Rate, r.Currency) }

	out.Header("Rates (" + r.Currency.String() + ")")

	flat := out.NewTable("option", "rate")
	flat.AlignRight(1)
	for _, n := range flatRates(r) {
		flat.AddRow(n.Name, money(n))
	}
	flat.Render()
	out.Println("")

	out.SubHeader("complexity")
	cx := out.NewTable("tier", "multiplier")
	cx.AlignRight(1)
	for _, n := range complexityRates(r) {
		cx.AddRow(n.Name, n.Rate.StringFixed(2)+"×")
	}
	cx.Render()
	out.Println("")

	for _, group := range []struct {
		title string
		rates []namedRate
	}{
		{"seo", seoRates(r)},
		{"maintenance (monthly)", planRates(r.MaintenanceRate)},
		{"hosting (monthly)", planRates(r.HostingRate)},
	} {
		out.SubHeader(group.title)
		tbl := out.NewTable("tier", "rate")
		tbl.AlignRight(1)
		for _, n := range group.rates {
			tbl.AddRow(n.Name, money(n))
		}
		tbl.Render()
		out.Println("")
	}
	return nil
}
