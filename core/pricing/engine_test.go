package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"site-quote/core/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", name, want, got.String())
	}
}

// TestDefaultSelectionScenario checks the reference quote end to end
func TestDefaultSelectionScenario(t *testing.T) {
	sel := types.OptionSelection{
		ProjectType:   types.ProjectInformational,
		Pages:         5,
		Complexity:    types.ComplexityStandard,
		Logo:          true,
		CopyPages:     5,
		SEO:           types.SEOStandard,
		PhotoSessions: 0,
		Languages:     1,
		TrainingHours: 2,
		Maintenance:   types.PlanBasic,
		Hosting:       types.PlanPro,
	}
	b := Estimate(sel)

	want := map[types.LineItemKind]string{
		types.KindBase:        "5900",
		types.KindPages:       "3125",
		types.KindLogo:        "1500",
		types.KindCopywriting: "300",
		types.KindSEO:         "800",
		types.KindTraining:    "238",
	}
	if len(b.Items) != len(want) {
		t.Fatalf("expected %d items, got %d: %+v", len(want), len(b.Items), b.Items)
	}
	for kind, amount := range want {
		item, ok := b.Item(kind)
		if !ok {
			t.Errorf("missing %s item", kind)
			continue
		}
		assertAmount(t, kind.String(), item.Amount, amount)
	}
	for _, kind := range []types.LineItemKind{types.KindPhotography, types.KindMultilingual} {
		if _, ok := b.Item(kind); ok {
			t.Errorf("zero-valued %s item should be omitted", kind)
		}
	}

	assertAmount(t, "subtotal", b.OneOffSubtotal, "11863")
	assertAmount(t, "maintenance", b.MaintenanceMonthly, "199")
	assertAmount(t, "hosting", b.HostingMonthly, "199")
	assertAmount(t, "first month", b.FirstMonthTotal, "12261")
	assertAmount(t, "monthly ongoing", b.MonthlyOngoing(), "398")

	if b.Currency != types.CurrencyEUR {
		t.Errorf("expected EUR, got %s", b.Currency)
	}
	if sel != types.DefaultSelection() {
		t.Errorf("reference selection should equal DefaultSelection")
	}
}

// TestItemLabels checks labels and display order
func TestItemLabels(t *testing.T) {
	b := Estimate(types.OptionSelection{
		ProjectType:   types.ProjectEcommerce,
		Pages:         3,
		Complexity:    types.ComplexityPremium,
		Logo:          true,
		CopyPages:     1,
		SEO:           types.SEOAdvanced,
		PhotoSessions: 1,
		Languages:     3,
		TrainingHours: 4,
	})

	want := []string{
		"Base website + e-commerce add-on",
		"Pages × complexity (3 × 2×)",
		"Logo design",
		"Copywriting (1 page)",
		"SEO package (advanced)",
		"Photography (1 session)",
		"Multilingual (2 extra languages)",
		"CMS training (4 h)",
	}
	if len(b.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(b.Items))
	}
	for i, label := range want {
		if b.Items[i].Label != label {
			t.Errorf("item %d: expected label %q, got %q", i, label, b.Items[i].Label)
		}
		if b.Items[i].Kind != types.LineItemKind(i) {
			t.Errorf("item %d: expected kind %s, got %s", i, types.LineItemKind(i), b.Items[i].Kind)
		}
	}
}

// TestEcommerceMinimum checks the add-on with everything else at minimum
func TestEcommerceMinimum(t *testing.T) {
	rates := DefaultRates()
	for _, tier := range types.ComplexityTiers() {
		b := New(rates).Estimate(types.OptionSelection{
			ProjectType: types.ProjectEcommerce,
			Pages:       0,
			Complexity:  tier,
		})

		want := rates.BaseWebsite.Add(rates.EcommerceAddon).Add(rates.PageDesign.Mul(rates.Complexity[tier]))
		if !b.OneOffSubtotal.Equal(want) {
			t.Errorf("%s: expected subtotal %s, got %s", tier, want, b.OneOffSubtotal)
		}
		if len(b.Items) != 2 {
			t.Errorf("%s: expected base and pages only, got %d items", tier, len(b.Items))
		}
		if !b.FirstMonthTotal.Equal(b.OneOffSubtotal) {
			t.Errorf("%s: no care plans selected, first month should equal subtotal", tier)
		}
	}
}

// TestDeterminism checks that pricing the same selection twice is identical
func TestDeterminism(t *testing.T) {
	for _, sel := range sampleSelections() {
		a := Estimate(sel)
		b := Estimate(sel)

		if a.QuoteID != b.QuoteID {
			t.Errorf("quote IDs differ: %s vs %s", a.QuoteID, b.QuoteID)
		}
		if len(a.Items) != len(b.Items) {
			t.Fatalf("item counts differ: %d vs %d", len(a.Items), len(b.Items))
		}
		for i := range a.Items {
			x, y := a.Items[i], b.Items[i]
			if x.Kind != y.Kind || x.Label != y.Label || x.Amount.String() != y.Amount.String() {
				t.Errorf("item %d differs: %+v vs %+v", i, x, y)
			}
		}
		if a.FirstMonthTotal.String() != b.FirstMonthTotal.String() {
			t.Errorf("totals differ: %s vs %s", a.FirstMonthTotal, b.FirstMonthTotal)
		}
	}
}

// TestFirstMonthIdentity checks total = subtotal + maintenance + hosting
func TestFirstMonthIdentity(t *testing.T) {
	for _, sel := range sampleSelections() {
		b := Estimate(sel)
		sum := b.OneOffSubtotal.Add(b.MaintenanceMonthly).Add(b.HostingMonthly)
		if !b.FirstMonthTotal.Equal(sum) {
			t.Errorf("%s: first month %s != %s", sel.Fingerprint(), b.FirstMonthTotal, sum)
		}

		items := decimal.Zero
		for _, item := range b.Items {
			items = items.Add(item.Amount)
		}
		if !items.Equal(b.OneOffSubtotal) {
			t.Errorf("%s: items sum %s != subtotal %s", sel.Fingerprint(), items, b.OneOffSubtotal)
		}
	}
}

// TestMultilingualLinear checks the first language is free and extras are linear
func TestMultilingualLinear(t *testing.T) {
	rates := DefaultRates()
	engine := New(rates)

	for _, langs := range []int{-3, 0, 1} {
		sel := types.DefaultSelection()
		sel.Languages = langs
		if _, ok := engine.Estimate(sel).Item(types.KindMultilingual); ok {
			t.Errorf("languages=%d should not bill multilingual", langs)
		}
	}

	prev := engine.Estimate(types.DefaultSelection()).OneOffSubtotal
	for langs := 2; langs <= 6; langs++ {
		sel := types.DefaultSelection()
		sel.Languages = langs
		b := engine.Estimate(sel)

		item, ok := b.Item(types.KindMultilingual)
		if !ok {
			t.Fatalf("languages=%d: missing multilingual item", langs)
		}
		want := rates.ExtraLanguage.Mul(decimal.NewFromInt(int64(langs - 1)))
		if !item.Amount.Equal(want) {
			t.Errorf("languages=%d: expected %s, got %s", langs, want, item.Amount)
		}
		if diff := b.OneOffSubtotal.Sub(prev); !diff.Equal(rates.ExtraLanguage) {
			t.Errorf("languages=%d: subtotal grew by %s, expected %s", langs, diff, rates.ExtraLanguage)
		}
		prev = b.OneOffSubtotal
	}
}

// TestClamping checks negative and zero counts are normalized
func TestClamping(t *testing.T) {
	tests := []struct {
		name  string
		pages int
	}{
		{"zero pages", 0},
		{"negative pages", -7},
		{"one page", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Estimate(types.OptionSelection{
				Pages:         tt.pages,
				Complexity:    types.ComplexitySimple,
				CopyPages:     -2,
				PhotoSessions: -1,
				TrainingHours: -10,
			})

			pages, ok := b.Item(types.KindPages)
			if !ok {
				t.Fatal("pages item is always present")
			}
			if !pages.Quantity.Equal(decimal.NewFromInt(1)) {
				t.Errorf("expected 1 page, got %s", pages.Quantity)
			}
			for _, kind := range []types.LineItemKind{types.KindCopywriting, types.KindPhotography, types.KindTraining} {
				if _, ok := b.Item(kind); ok {
					t.Errorf("negative count for %s should clamp to zero", kind)
				}
			}
			assertAmount(t, "subtotal", b.OneOffSubtotal, "6400")
			if b.Selection.CopyPages != 0 || b.Selection.PhotoSessions != 0 || b.Selection.TrainingHours != 0 {
				t.Errorf("breakdown should carry the normalized selection, got %+v", b.Selection)
			}
		})
	}
}

// TestQuoteIDStable checks equal selections share an ID and different ones do not
func TestQuoteIDStable(t *testing.T) {
	a := types.DefaultSelection()
	b := types.DefaultSelection()
	b.Pages = -1
	c := types.DefaultSelection()
	c.Pages = 1

	if QuoteID(b) != QuoteID(c) {
		t.Error("selections that normalize equally should share an ID")
	}
	if QuoteID(a) == QuoteID(c) {
		t.Error("different selections should not share an ID")
	}
}

// TestRateTableExhaustive checks every billable tier has a rate
func TestRateTableExhaustive(t *testing.T) {
	rates := DefaultRates()

	for _, tier := range types.ComplexityTiers() {
		if !rates.Complexity[tier].IsPositive() {
			t.Errorf("complexity %s has no multiplier", tier)
		}
	}
	for _, tier := range types.SEOTiers() {
		if tier != types.SEONone && !rates.SEO[tier].IsPositive() {
			t.Errorf("SEO tier %s has no rate", tier)
		}
	}
	for _, tier := range types.PlanTiers() {
		if tier == types.PlanNone {
			if !rates.Maintenance[tier].IsZero() || !rates.Hosting[tier].IsZero() {
				t.Error("plan none must be free")
			}
			continue
		}
		if !rates.Maintenance[tier].IsPositive() || !rates.Hosting[tier].IsPositive() {
			t.Errorf("plan %s has no rate", tier)
		}
	}
}

func sampleSelections() []types.OptionSelection {
	var out []types.OptionSelection
	for _, pt := range types.ProjectTypes() {
		for _, cx := range types.ComplexityTiers() {
			for _, seo := range types.SEOTiers() {
				for _, plan := range types.PlanTiers() {
					out = append(out, types.OptionSelection{
						ProjectType:   pt,
						Pages:         int(cx)*4 - 1,
						Complexity:    cx,
						Logo:          seo%2 == 0,
						CopyPages:     int(seo) * 3,
						SEO:           seo,
						PhotoSessions: int(plan) - 1,
						Languages:     int(plan),
						TrainingHours: int(cx) + int(plan),
						Maintenance:   plan,
						Hosting:       types.PlanTier((int(plan) + 1) % types.NumPlanTiers),
					})
				}
			}
		}
	}
	return out
}
