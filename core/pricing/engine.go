// Package pricing - Quote engine
// The engine is a pure function of the selection and the rate table.
package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"site-quote/core/types"
)

// quoteNamespace scopes the name-based quote IDs
var quoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:site-quote:quote"))

// Engine prices option selections against a rate table
type Engine struct {
	rates RateTable
}

// New creates an engine over the given rates
func New(rates RateTable) *Engine {
	return &Engine{rates: rates}
}

// Default creates an engine over the compiled-in rates
func Default() *Engine {
	return New(DefaultRates())
}

// Rates returns a copy of the engine's rate table
func (e *Engine) Rates() RateTable {
	return e.rates
}

// Estimate prices a selection using the default rate table
func Estimate(sel types.OptionSelection) *types.Breakdown {
	return Default().Estimate(sel)
}

// QuoteID returns the deterministic identifier of a selection
func QuoteID(sel types.OptionSelection) string {
	return uuid.NewSHA1(quoteNamespace, []byte(sel.Fingerprint())).String()
}

// Estimate produces the itemized breakdown for a selection.
// Counts are clamped first; zero-valued optional components are left out
// of the items but still add zero to the subtotal.
func (e *Engine) Estimate(sel types.OptionSelection) *types.Breakdown {
	s := sel.Normalize()
	r := &e.rates

	var items []types.LineItem
	add := func(kind types.LineItemKind, label string, qty int, rate decimal.Decimal) decimal.Decimal {
		q := decimal.NewFromInt(int64(qty))
		amount := q.Mul(rate)
		items = append(items, types.LineItem{
			Kind:     kind,
			Label:    label,
			Quantity: q,
			Rate:     rate,
			Amount:   amount,
		})
		return amount
	}

	subtotal := decimal.Zero

	baseLabel := "Base website"
	base := r.BaseWebsite
	if s.ProjectType == types.ProjectEcommerce {
		baseLabel = "Base website + e-commerce add-on"
		base = base.Add(r.EcommerceAddon)
	}
	subtotal = subtotal.Add(add(types.KindBase, baseLabel, 1, base))

	multiplier := r.ComplexityMultiplier(s.Complexity)
	subtotal = subtotal.Add(add(types.KindPages,
		fmt.Sprintf("Pages × complexity (%d × %s×)", s.Pages, multiplier.String()),
		s.Pages, r.PageDesign.Mul(multiplier)))
	items[len(items)-1].Multiplier = multiplier.String()

	if s.Logo {
		subtotal = subtotal.Add(add(types.KindLogo, "Logo design", 1, r.Logo))
	}

	if s.CopyPages > 0 {
		subtotal = subtotal.Add(add(types.KindCopywriting,
			fmt.Sprintf("Copywriting (%d %s)", s.CopyPages, plural(s.CopyPages, "page", "pages")),
			s.CopyPages, r.CopywritingPerPage))
	}

	if seo := r.SEORate(s.SEO); s.SEO != types.SEONone && !seo.IsZero() {
		subtotal = subtotal.Add(add(types.KindSEO,
			fmt.Sprintf("SEO package (%s)", s.SEO), 1, seo))
	}

	if s.PhotoSessions > 0 {
		subtotal = subtotal.Add(add(types.KindPhotography,
			fmt.Sprintf("Photography (%d %s)", s.PhotoSessions, plural(s.PhotoSessions, "session", "sessions")),
			s.PhotoSessions, r.PhotographySession))
	}

	if extra := s.ExtraLanguages(); extra > 0 {
		subtotal = subtotal.Add(add(types.KindMultilingual,
			fmt.Sprintf("Multilingual (%d extra %s)", extra, plural(extra, "language", "languages")),
			extra, r.ExtraLanguage))
	}

	if s.TrainingHours > 0 {
		subtotal = subtotal.Add(add(types.KindTraining,
			fmt.Sprintf("CMS training (%d h)", s.TrainingHours),
			s.TrainingHours, r.TrainingPerHour))
	}

	maintenance := r.MaintenanceRate(s.Maintenance)
	hosting := r.HostingRate(s.Hosting)

	return &types.Breakdown{
		QuoteID:            QuoteID(s),
		Selection:          s,
		Items:              items,
		OneOffSubtotal:     subtotal,
		MaintenanceMonthly: maintenance,
		HostingMonthly:     hosting,
		FirstMonthTotal:    subtotal.Add(maintenance).Add(hosting),
		Currency:           r.Currency,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
