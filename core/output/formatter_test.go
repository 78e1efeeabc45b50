package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"site-quote/core/i18n"
	"site-quote/core/pricing"
	"site-quote/core/types"
	"site-quote/internal/errors"
)

func defaultResult(lang i18n.Lang) *QuoteResult {
	return &QuoteResult{
		Breakdown: pricing.Estimate(types.DefaultSelection()),
		Lang:      lang,
		NoColor:   true,
	}
}

// TestCLIRendersEveryItemAndTotal proves the CLI output lists each line item
// and each total in whole currency units
func TestCLIRendersEveryItemAndTotal(t *testing.T) {
	var buf bytes.Buffer
	result := defaultResult(i18n.LangEN)
	if err := NewCLIFormatter().Render(&buf, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, item := range result.Breakdown.Items {
		if !strings.Contains(out, item.Label) {
			t.Errorf("missing item %q", item.Label)
		}
	}
	for _, want := range []string{"11,863", "12,261", "199", "This website includes", "Disclaimer", result.Breakdown.QuoteID} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "12,261.00") {
		t.Error("amounts must not carry a fraction")
	}
	if strings.Contains(out, "\033[") {
		t.Error("unexpected escape codes with color disabled")
	}
}

// TestCLIDetailsAndLanguageNote proves the details block and the extra
// language note appear only when asked for
func TestCLIDetailsAndLanguageNote(t *testing.T) {
	sel := types.DefaultSelection()
	sel.Languages = 3
	result := &QuoteResult{Breakdown: pricing.Estimate(sel), Lang: i18n.LangEN, Details: true, NoColor: true}

	var buf bytes.Buffer
	if err := NewCLIFormatter().Render(&buf, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Design complexity", "standard", "5 × €625", "First language included"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := NewCLIFormatter().Render(&buf, defaultResult(i18n.LangEN)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "First language included") {
		t.Error("language note shown for a single language")
	}
}

// TestCLIFinnish proves labels and amounts follow the Finnish locale
func TestCLIFinnish(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCLIFormatter().Render(&buf, defaultResult(i18n.LangFI)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Verkkosivulaskuri", "Logon suunnittelu", "€"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "12,261") {
		t.Error("Finnish output must not use comma grouping")
	}
}

// TestJSONQuote proves the JSON document carries exact decimal totals and
// the formatted display strings
func TestJSONQuote(t *testing.T) {
	var buf bytes.Buffer
	result := defaultResult(i18n.LangEN)
	if err := NewJSONFormatter().Render(&buf, result); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		QuoteID  string `json:"quote_id"`
		Currency string `json:"currency"`
		Language string `json:"language"`
		Items    []struct {
			Kind    string `json:"kind"`
			Amount  string `json:"amount"`
			Display string `json:"display"`
		} `json:"items"`
		Totals    map[string]string `json:"totals"`
		Formatted map[string]string `json:"formatted"`
		Selection map[string]any    `json:"selection"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if doc.QuoteID != result.Breakdown.QuoteID {
		t.Errorf("quote_id = %q", doc.QuoteID)
	}
	if doc.Currency != "EUR" || doc.Language != "en" {
		t.Errorf("currency/language = %s/%s", doc.Currency, doc.Language)
	}
	if len(doc.Items) != len(result.Breakdown.Items) {
		t.Fatalf("expected %d items, got %d", len(result.Breakdown.Items), len(doc.Items))
	}
	if doc.Items[0].Kind != "base" || doc.Items[0].Amount != "5900" {
		t.Errorf("first item = %+v", doc.Items[0])
	}
	want := map[string]string{
		"one_off_subtotal":    "11863",
		"maintenance_monthly": "199",
		"hosting_monthly":     "199",
		"monthly_ongoing":     "398",
		"first_month_total":   "12261",
	}
	for k, v := range want {
		if doc.Totals[k] != v {
			t.Errorf("totals.%s = %q, want %q", k, doc.Totals[k], v)
		}
	}
	if got := doc.Formatted["first_month_total"]; !strings.Contains(got, "12,261") {
		t.Errorf("formatted first_month_total = %q", got)
	}
	if doc.Selection["complexity"] != "standard" {
		t.Errorf("selection.complexity = %v", doc.Selection["complexity"])
	}
}

// TestMarkdownQuote proves the markdown report holds the table and summary
func TestMarkdownQuote(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownFormatter().Render(&buf, defaultResult(i18n.LangEN)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"## Website Quote Calculator", "|---|---:|", "| Logo design | €1,500 |", "### This website includes", "**First month total: €12,261**"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

// TestDetailsListEveryOption proves the details view names every selected
// option so the quote can be reproduced from it
func TestDetailsListEveryOption(t *testing.T) {
	sel := types.DefaultSelection()
	sel.Logo = true
	sel.CopyPages = 7
	sel.PhotoSessions = 2
	sel.Languages = 3
	sel.TrainingHours = 4
	result := &QuoteResult{Breakdown: pricing.Estimate(sel), Lang: i18n.LangEN, Details: true, NoColor: true}

	var md bytes.Buffer
	if err := NewMarkdownFormatter().Render(&md, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"- **Include logo design:** Yes",
		"- **Copywriting pages:** 7",
		"- **Photography sessions:** 2",
		"- **Total languages:** 3",
		"- **CMS training (hours):** 4",
		"- **Hosting:** " + sel.Hosting.String(),
	} {
		if !strings.Contains(md.String(), want) {
			t.Errorf("markdown: expected %q in output:\n%s", want, md.String())
		}
	}

	var cli bytes.Buffer
	if err := NewCLIFormatter().Render(&cli, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, row := range result.SelectionRows() {
		if !strings.Contains(cli.String(), row[0]) {
			t.Errorf("cli: missing option %q", row[0])
		}
	}
	if rows := result.SelectionRows(); len(rows) != 11 {
		t.Errorf("expected 11 option rows, got %d", len(rows))
	}
}

// TestRenderRates proves every formatter lists the full rate table
func TestRenderRates(t *testing.T) {
	result := &RatesResult{Rates: pricing.DefaultRates(), Lang: i18n.LangEN, NoColor: true}
	for _, f := range []Formatter{NewCLIFormatter(), NewJSONFormatter(), NewMarkdownFormatter()} {
		var buf bytes.Buffer
		if err := f.RenderRates(&buf, result); err != nil {
			t.Fatalf("%s: %v", f.Format(), err)
		}
		out := buf.String()
		for _, want := range []string{"base_website", "enterprise", "premium"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: expected %q in output", f.Format(), want)
			}
		}
	}

	var buf bytes.Buffer
	_ = NewJSONFormatter().RenderRates(&buf, result)
	var doc struct {
		Complexity []namedRate `json:"complexity"`
		Hosting    []namedRate `json:"hosting"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Complexity) != int(types.NumComplexityTiers) || len(doc.Hosting) != int(types.NumPlanTiers) {
		t.Fatalf("unexpected tier counts: %d, %d", len(doc.Complexity), len(doc.Hosting))
	}
	if doc.Complexity[1].Name != "standard" || doc.Complexity[1].Rate.String() != "1.25" {
		t.Errorf("complexity[1] = %+v", doc.Complexity[1])
	}
}

// TestParseFormat proves names and aliases resolve and unknown names fail
func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"cli":      FormatCLI,
		"":         FormatCLI,
		"Table":    FormatCLI,
		"json":     FormatJSON,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

// TestRegistry proves lookups, duplicate guards and listing order
func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	formats := r.Formats()
	if len(formats) != 3 || formats[0] != FormatCLI || formats[1] != FormatJSON || formats[2] != FormatMarkdown {
		t.Errorf("Formats() = %v", formats)
	}
	if f, err := r.Get(FormatJSON); err != nil || f.Format() != FormatJSON {
		t.Errorf("Get(json) = %v, %v", f, err)
	}
	if err := r.Register(NewJSONFormatter()); !errors.IsType(err, errors.TypeInternal) {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if _, err := NewRegistry().Get(FormatCLI); !errors.IsType(err, errors.TypeNotSupported) {
		t.Errorf("expected not supported, got %v", err)
	}
}
