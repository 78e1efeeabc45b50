// Package output provides output formatting interfaces.
// This package produces human and machine-readable quotes and rate sheets.
package output

import (
	"io"
	"strconv"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"site-quote/core/i18n"
	"site-quote/core/pricing"
	"site-quote/core/types"
	"site-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "table", "":
		return FormatCLI, nil
	}
	return "", errors.Newf(errors.TypeInput, "unknown output format %q (expected cli, json or markdown)", s)
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes a quote
	Render(w io.Writer, result *QuoteResult) error

	// RenderRates writes a rate sheet
	RenderRates(w io.Writer, result *RatesResult) error
}

// QuoteResult is a priced selection ready for display
type QuoteResult struct {
	// Breakdown is the engine output
	Breakdown *types.Breakdown

	// Lang selects labels and number formatting
	Lang i18n.Lang

	// Details adds the selection and unit rates
	Details bool

	// NoColor disables terminal colors
	NoColor bool
}

// RatesResult is a rate table ready for display
type RatesResult struct {
	Rates   pricing.RateTable
	Lang    i18n.Lang
	NoColor bool
}

// Money formats an amount in the result's language and currency
func (r *QuoteResult) Money(amount decimal.Decimal) string {
	return i18n.Money(r.Lang, amount, r.Breakdown.Currency)
}

// Label returns the localized label of an item
func (r *QuoteResult) Label(item types.LineItem) string {
	return i18n.ItemLabel(r.Lang, item, r.Breakdown.Selection)
}

// SelectionRows returns the localized label and value of every selected
// option, in form order
func (r *QuoteResult) SelectionRows() [][2]string {
	lang := r.Lang
	sel := r.Breakdown.Selection
	project := i18n.T(lang, i18n.KeyInformational)
	if sel.ProjectType == types.ProjectEcommerce {
		project = i18n.T(lang, i18n.KeyEcommerce)
	}
	logo := i18n.T(lang, i18n.KeyNo)
	if sel.Logo {
		logo = i18n.T(lang, i18n.KeyYes)
	}
	return [][2]string{
		{i18n.T(lang, i18n.KeyProjectType), project},
		{i18n.T(lang, i18n.KeyPages), strconv.Itoa(sel.Pages)},
		{i18n.T(lang, i18n.KeyComplexity), sel.Complexity.String()},
		{i18n.T(lang, i18n.KeyIncludeLogo), logo},
		{i18n.T(lang, i18n.KeyCopyPages), strconv.Itoa(sel.CopyPages)},
		{i18n.T(lang, i18n.KeySEOLevel), sel.SEO.String()},
		{i18n.T(lang, i18n.KeyPhotoSessions), strconv.Itoa(sel.PhotoSessions)},
		{i18n.T(lang, i18n.KeyTotalLanguages), strconv.Itoa(sel.Languages)},
		{i18n.T(lang, i18n.KeyCMSTraining), strconv.Itoa(sel.TrainingHours)},
		{i18n.T(lang, i18n.KeyMaintenancePlan), sel.Maintenance.String()},
		{i18n.T(lang, i18n.KeyHosting), sel.Hosting.String()},
	}
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry holding every built-in formatter
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NewCLIFormatter())
	_ = r.Register(NewJSONFormatter())
	_ = r.Register(NewMarkdownFormatter())
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported("output format " + string(format))
	}
	return f, nil
}

// Formats returns the registered formats in name order
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// namedRate pairs a rate with the option or tier it prices
type namedRate struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

func complexityRates(r *pricing.RateTable) []namedRate {
	out := make([]namedRate, 0, types.NumComplexityTiers)
	for _, t := range types.ComplexityTiers() {
		out = append(out, namedRate{t.String(), r.ComplexityMultiplier(t)})
	}
	return out
}

func seoRates(r *pricing.RateTable) []namedRate {
	out := make([]namedRate, 0, types.NumSEOTiers)
	for _, t := range types.SEOTiers() {
		out = append(out, namedRate{t.String(), r.SEORate(t)})
	}
	return out
}

func planRates(rate func(types.PlanTier) decimal.Decimal) []namedRate {
	out := make([]namedRate, 0, types.NumPlanTiers)
	for _, t := range types.PlanTiers() {
		out = append(out, namedRate{t.String(), rate(t)})
	}
	return out
}

// flatRates lists the untiered rates in sheet order
func flatRates(r *pricing.RateTable) []namedRate {
	return []namedRate{
		{"base_website", r.BaseWebsite},
		{"ecommerce_addon", r.EcommerceAddon},
		{"page_design", r.PageDesign},
		{"logo", r.Logo},
		{"copywriting_per_page", r.CopywritingPerPage},
		{"photography_session", r.PhotographySession},
		{"extra_language", r.ExtraLanguage},
		{"training_per_hour", r.TrainingPerHour},
	}
}
