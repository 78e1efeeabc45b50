// Package pricing provides the static rate table and the quote engine.
package pricing

import (
	"github.com/shopspring/decimal"

	"site-quote/core/types"
)

// RateTable maps every option and tier to a monetary amount or multiplier.
// Tiered rates are fixed-size arrays indexed by the tier type, so a new
// tier changes the array length and every literal must be revisited.
type RateTable struct {
	// Currency is the currency all amounts are expressed in
	Currency types.Currency `json:"currency"`

	// BaseWebsite is the flat project start fee
	BaseWebsite decimal.Decimal `json:"base_website"`

	// EcommerceAddon is added to the base for e-commerce projects
	EcommerceAddon decimal.Decimal `json:"ecommerce_addon"`

	// PageDesign is the per-page design rate before the complexity multiplier
	PageDesign decimal.Decimal `json:"page_design"`

	// Complexity holds the page design multiplier per tier
	Complexity [types.NumComplexityTiers]decimal.Decimal `json:"complexity"`

	// Logo is the flat logo design rate
	Logo decimal.Decimal `json:"logo"`

	// CopywritingPerPage is the per-page copywriting rate
	CopywritingPerPage decimal.Decimal `json:"copywriting_per_page"`

	// SEO holds the flat SEO package rate per tier
	SEO [types.NumSEOTiers]decimal.Decimal `json:"seo"`

	// PhotographySession is the per-session photography rate
	PhotographySession decimal.Decimal `json:"photography_session"`

	// ExtraLanguage is billed for every language after the first
	ExtraLanguage decimal.Decimal `json:"extra_language"`

	// TrainingPerHour is the hourly CMS training rate
	TrainingPerHour decimal.Decimal `json:"training_per_hour"`

	// Maintenance holds the monthly maintenance fee per plan
	Maintenance [types.NumPlanTiers]decimal.Decimal `json:"maintenance"`

	// Hosting holds the monthly hosting fee per plan
	Hosting [types.NumPlanTiers]decimal.Decimal `json:"hosting"`
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// DefaultRates returns the compiled-in rate table
func DefaultRates() RateTable {
	return RateTable{
		Currency:       types.CurrencyEUR,
		BaseWebsite:    d(5900),
		EcommerceAddon: d(4500),
		PageDesign:     d(500),
		Complexity: [types.NumComplexityTiers]decimal.Decimal{
			types.ComplexitySimple:   decimal.RequireFromString("1.0"),
			types.ComplexityStandard: decimal.RequireFromString("1.25"),
			types.ComplexityAdvanced: decimal.RequireFromString("1.6"),
			types.ComplexityPremium:  decimal.RequireFromString("2.0"),
		},
		Logo:               d(1500),
		CopywritingPerPage: d(60),
		SEO: [types.NumSEOTiers]decimal.Decimal{
			types.SEONone:     d(0),
			types.SEOBasic:    d(500),
			types.SEOStandard: d(800),
			types.SEOAdvanced: d(1500),
		},
		PhotographySession: d(220),
		ExtraLanguage:      d(180),
		TrainingPerHour:    d(119),
		Maintenance: [types.NumPlanTiers]decimal.Decimal{
			types.PlanNone:       d(0),
			types.PlanBasic:      d(199),
			types.PlanPro:        d(399),
			types.PlanEnterprise: d(699),
		},
		Hosting: [types.NumPlanTiers]decimal.Decimal{
			types.PlanNone:       d(0),
			types.PlanBasic:      d(100),
			types.PlanPro:        d(199),
			types.PlanEnterprise: d(399),
		},
	}
}

// ComplexityMultiplier returns the page design multiplier for a tier
func (r *RateTable) ComplexityMultiplier(t types.ComplexityTier) decimal.Decimal {
	if !t.Valid() {
		return decimal.NewFromInt(1)
	}
	return r.Complexity[t]
}

// SEORate returns the flat rate of an SEO tier
func (r *RateTable) SEORate(t types.SEOTier) decimal.Decimal {
	if !t.Valid() {
		return decimal.Zero
	}
	return r.SEO[t]
}

// MaintenanceRate returns the monthly maintenance fee of a plan
func (r *RateTable) MaintenanceRate(t types.PlanTier) decimal.Decimal {
	if !t.Valid() {
		return decimal.Zero
	}
	return r.Maintenance[t]
}

// HostingRate returns the monthly hosting fee of a plan
func (r *RateTable) HostingRate(t types.PlanTier) decimal.Decimal {
	if !t.Valid() {
		return decimal.Zero
	}
	return r.Hosting[t]
}
