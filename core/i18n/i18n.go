// Package i18n provides the calculator's display strings and locale-aware
// money formatting.
package i18n

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"site-quote/core/types"
	"site-quote/internal/errors"
)

// Lang is a supported display language
type Lang uint8

const (
	LangEN Lang = iota
	LangFI

	numLangs = iota
)

var (
	langTags = [numLangs]language.Tag{
		LangEN: language.English,
		LangFI: language.Finnish,
	}
	langCodes = [numLangs]string{
		LangEN: "en",
		LangFI: "fi",
	}
	matcher = language.NewMatcher(langTags[:])
)

// String returns the ISO 639-1 code
func (l Lang) String() string {
	if l >= numLangs {
		return langCodes[LangEN]
	}
	return langCodes[l]
}

// Tag returns the BCP 47 tag of the language
func (l Lang) Tag() language.Tag {
	if l >= numLangs {
		return language.English
	}
	return langTags[l]
}

// ParseLang parses an exact language code ("en", "fi")
func ParseLang(s string) (Lang, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	for i, c := range langCodes {
		if c == code {
			return Lang(i), nil
		}
	}
	return LangEN, errors.Newf(errors.TypeInput, "unsupported language %q (expected en or fi)", s)
}

// Detect picks the closest supported language for a locale string such as
// "fi-FI" or a POSIX value like "fi_FI.UTF-8". Unknown input yields English.
func Detect(locale string) Lang {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return LangEN
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return LangEN
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return LangEN
	}
	return Lang(idx)
}

// Key identifies a display string
type Key string

const (
	KeyTitle           Key = "title"
	KeySubtitle        Key = "subtitle"
	KeyProjectType     Key = "projectType"
	KeyInformational   Key = "informational"
	KeyEcommerce       Key = "ecommerce"
	KeyPages           Key = "pagesLabel"
	KeyComplexity      Key = "designComplexity"
	KeyIncludeLogo     Key = "includeLogo"
	KeyCopyPages       Key = "copyPages"
	KeyPhotoSessions   Key = "photoSessions"
	KeyTotalLanguages  Key = "totalLanguages"
	KeyCMSTraining     Key = "cmsTraining"
	KeyYes             Key = "yes"
	KeyNo              Key = "no"
	KeySEOLevel        Key = "seoLevel"
	KeyMaintenancePlan Key = "maintenancePlan"
	KeyHosting         Key = "hosting"
	KeyEstimate        Key = "estimate"
	KeyOneOffSubtotal  Key = "oneOffSubtotal"
	KeyMaintMonthly    Key = "maintMonthly"
	KeyHostMonthly     Key = "hostMonthly"
	KeyFirstMonthTotal Key = "firstMonthTotal"
	KeyDisclaimer      Key = "disclaimer"
	KeyIncludesTitle   Key = "includesTitle"
	KeyProjectOneOff   Key = "projectOneOff"
	KeyMonthlyOngoing  Key = "monthlyOngoing"
	KeyFirstLangNote   Key = "firstLangNote"
)

var dict = [numLangs]map[Key]string{
	LangEN: {
		KeyTitle:           "Website Quote Calculator",
		KeySubtitle:        "Select your needs to get an instant estimate.",
		KeyProjectType:     "Project type",
		KeyInformational:   "Informational",
		KeyEcommerce:       "E-commerce",
		KeyPages:           "Number of pages",
		KeyComplexity:      "Design complexity",
		KeyIncludeLogo:     "Include logo design",
		KeyCopyPages:       "Copywriting pages",
		KeyPhotoSessions:   "Photography sessions",
		KeyTotalLanguages:  "Total languages",
		KeyCMSTraining:     "CMS training (hours)",
		KeyYes:             "Yes",
		KeyNo:              "No",
		KeySEOLevel:        "SEO level",
		KeyMaintenancePlan: "Maintenance plan",
		KeyHosting:         "Hosting",
		KeyEstimate:        "Estimate",
		KeyOneOffSubtotal:  "One-off subtotal",
		KeyMaintMonthly:    "Maintenance (monthly)",
		KeyHostMonthly:     "Hosting (monthly)",
		KeyFirstMonthTotal: "First month total",
		KeyDisclaimer:      "Disclaimer: This is a non-binding estimate. Adjust formulas to reflect your own rates & scope.",
		KeyIncludesTitle:   "This website includes",
		KeyProjectOneOff:   "Project price (one-off)",
		KeyMonthlyOngoing:  "Monthly price (ongoing)",
		KeyFirstLangNote:   "First language included. Extras billed.",
	},
	LangFI: {
		KeyTitle:           "Verkkosivulaskuri",
		KeySubtitle:        "Valitse tarpeet ja saat arvion heti.",
		KeyProjectType:     "Projektin tyyppi",
		KeyInformational:   "Verkkosivusto",
		KeyEcommerce:       "Verkkokauppa",
		KeyPages:           "Sivujen lukumäärä",
		KeyComplexity:      "Ulkoasun kompleksisuus",
		KeyIncludeLogo:     "Sisällytä logon suunnittelu",
		KeyCopyPages:       "Copywriting-sivut",
		KeyPhotoSessions:   "Kuvaussessiot",
		KeyTotalLanguages:  "Kieliä yhteensä",
		KeyCMSTraining:     "Koulutus (h)",
		KeyYes:             "Kyllä",
		KeyNo:              "Ei",
		KeySEOLevel:        "SEO-taso",
		KeyMaintenancePlan: "Ylläpitosopimus",
		KeyHosting:         "Hostaus",
		KeyEstimate:        "Arvio",
		KeyOneOffSubtotal:  "Projektikustannus",
		KeyMaintMonthly:    "Ylläpito (kk)",
		KeyHostMonthly:     "Hostaus (kk)",
		KeyFirstMonthTotal: "Ensimmäisen kuun hinta yhteensä",
		KeyDisclaimer:      "Huom: Tämä on suuntaa-antava arvio.",
		KeyIncludesTitle:   "Nämä asiat sivusto sisältää",
		KeyProjectOneOff:   "Projektin hinta (kertakustannukset)",
		KeyMonthlyOngoing:  "KK-hinta (jatkuvat kulut)",
		KeyFirstLangNote:   "Ensimmäinen kieli sisältyy. Lisäkielet laskutetaan.",
	},
}

// T returns the string for key, falling back to English and then to the key
func T(lang Lang, key Key) string {
	if lang < numLangs {
		if s, ok := dict[lang][key]; ok {
			return s
		}
	}
	if s, ok := dict[LangEN][key]; ok {
		return s
	}
	return string(key)
}

// ItemLabel returns the display label of a line item. English uses the
// engine's label as is.
func ItemLabel(lang Lang, item types.LineItem, sel types.OptionSelection) string {
	if lang != LangFI {
		return item.Label
	}

	qty := item.Quantity.IntPart()
	switch item.Kind {
	case types.KindBase:
		if sel.ProjectType == types.ProjectEcommerce {
			return "Perussivusto + verkkokauppa"
		}
		return "Perussivusto"
	case types.KindPages:
		return fmt.Sprintf("Sivut × kompleksisuus (%d × %s×)", qty, item.Multiplier)
	case types.KindLogo:
		return "Logon suunnittelu"
	case types.KindCopywriting:
		return fmt.Sprintf("Copywriting (%d %s)", qty, pluralFI(qty, "sivu", "sivua"))
	case types.KindSEO:
		return fmt.Sprintf("SEO-paketti (%s)", sel.SEO)
	case types.KindPhotography:
		return fmt.Sprintf("Valokuvaus (%d %s)", qty, pluralFI(qty, "sessio", "sessiota"))
	case types.KindMultilingual:
		return fmt.Sprintf("Monikielisyys (%d %s)", qty, pluralFI(qty, "lisäkieli", "lisäkieltä"))
	case types.KindTraining:
		return fmt.Sprintf("Koulutus (%d h)", qty)
	}
	return item.Label
}

func pluralFI(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Money formats an amount in the given currency for the language, rounded
// to whole units with locale grouping.
func Money(lang Lang, amount decimal.Decimal, cur types.Currency) string {
	unit, err := currency.ParseISO(cur.String())
	if err != nil {
		unit = currency.EUR
	}

	p := message.NewPrinter(lang.Tag())
	whole := amount.Round(0).IntPart()
	num := p.Sprint(number.Decimal(whole, number.MaxFractionDigits(0)))
	sym := p.Sprint(currency.Symbol(unit))

	if lang == LangFI {
		return num + " " + sym
	}
	return sym + num
}
