package output

import (
	"fmt"
	"io"
	"strings"

	"site-quote/core/i18n"
)

// MarkdownFormatter writes quotes as a markdown report, suitable for
// pasting into an email or a ticket
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes the quote report
func (f *MarkdownFormatter) Render(w io.Writer, result *QuoteResult) error {
	var sb strings.Builder
	b := result.Breakdown
	lang := result.Lang

	sb.WriteString(fmt.Sprintf("## %s\n\n", i18n.T(lang, i18n.KeyTitle)))

	if result.Details {
		for _, row := range result.SelectionRows() {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", cell(row[0]), cell(row[1])))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("### %s\n\n", i18n.T(lang, i18n.KeyEstimate)))
	sb.WriteString("| | |\n|---|---:|\n")
	for _, item := range b.Items {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", cell(result.Label(item)), result.Money(item.Amount)))
	}
	sb.WriteString(fmt.Sprintf("| %s | %s |\n", i18n.T(lang, i18n.KeyOneOffSubtotal), result.Money(b.OneOffSubtotal)))
	sb.WriteString(fmt.Sprintf("| %s | %s |\n", i18n.T(lang, i18n.KeyMaintMonthly), result.Money(b.MaintenanceMonthly)))
	sb.WriteString(fmt.Sprintf("| %s | %s |\n", i18n.T(lang, i18n.KeyHostMonthly), result.Money(b.HostingMonthly)))
	sb.WriteString(fmt.Sprintf("| **%s** | **%s** |\n\n", i18n.T(lang, i18n.KeyFirstMonthTotal), result.Money(b.FirstMonthTotal)))

	if b.Selection.Languages > 1 {
		sb.WriteString(fmt.Sprintf("> %s\n\n", i18n.T(lang, i18n.KeyFirstLangNote)))
	}

	sb.WriteString(fmt.Sprintf("### %s\n\n", i18n.T(lang, i18n.KeyIncludesTitle)))
	sb.WriteString(fmt.Sprintf("- %s: %s\n", i18n.T(lang, i18n.KeyProjectOneOff), result.Money(b.OneOffSubtotal)))
	sb.WriteString(fmt.Sprintf("- %s: %s\n", i18n.T(lang, i18n.KeyMonthlyOngoing), result.Money(b.MonthlyOngoing())))
	sb.WriteString(fmt.Sprintf("  - %s: %s\n", i18n.T(lang, i18n.KeyMaintMonthly), result.Money(b.MaintenanceMonthly)))
	sb.WriteString(fmt.Sprintf("  - %s: %s\n", i18n.T(lang, i18n.KeyHostMonthly), result.Money(b.HostingMonthly)))
	sb.WriteString(fmt.Sprintf("- **%s: %s**\n\n", i18n.T(lang, i18n.KeyFirstMonthTotal), result.Money(b.FirstMonthTotal)))

	sb.WriteString(fmt.Sprintf("_%s_\n\n", i18n.T(lang, i18n.KeyDisclaimer)))
	sb.WriteString(fmt.Sprintf("<sub>quote %s</sub>\n", b.QuoteID))

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderRates writes the rate sheet as markdown tables
func (f *MarkdownFormatter) RenderRates(w io.Writer, result *RatesResult) error {
	var sb strings.Builder
	r := &result.Rates
	money := func(n namedRate) string { return i18n.Money(result.Lang, n.Rate, r.Currency) }

	sb.WriteString(fmt.Sprintf("## Rates (%s)\n\n", r.Currency))
	sb.WriteString("| option | rate |\n|---|---:|\n")
	for _, n := range flatRates(r) {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", n.Name, money(n)))
	}

	sb.WriteString("\n### complexity\n\n| tier | multiplier |\n|---|---:|\n")
	for _, n := range complexityRates(r) {
		sb.WriteString(fmt.Sprintf("| %s | %s× |\n", n.Name, n.Rate.StringFixed(2)))
	}

	groups := []struct {
		title string
		rates []namedRate
	}{
		{"seo", seoRates(r)},
		{"maintenance (monthly)", planRates(r.MaintenanceRate)},
		{"hosting (monthly)", planRates(r.HostingRate)},
	}
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("\n### %s\n\n| tier | rate |\n|---|---:|\n", g.title))
		for _, n := range g.rates {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", n.Name, money(n)))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// cell escapes pipes so a label cannot break the table
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
