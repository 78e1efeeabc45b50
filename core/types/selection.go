// Package types - Option selection types
package types

import (
	"fmt"
	"strings"

	"site-quote/internal/errors"
)

// ProjectType is the kind of website being quoted
type ProjectType uint8

const (
	ProjectInformational ProjectType = iota
	ProjectEcommerce

	// NumProjectTypes is the number of project types
	NumProjectTypes = iota
)

var projectTypeNames = [NumProjectTypes]string{
	ProjectInformational: "informational",
	ProjectEcommerce:     "ecommerce",
}

// ComplexityTier is the design complexity of the pages
type ComplexityTier uint8

const (
	ComplexitySimple ComplexityTier = iota
	ComplexityStandard
	ComplexityAdvanced
	ComplexityPremium

	// NumComplexityTiers is the number of complexity tiers
	NumComplexityTiers = iota
)

var complexityNames = [NumComplexityTiers]string{
	ComplexitySimple:   "simple",
	ComplexityStandard: "standard",
	ComplexityAdvanced: "advanced",
	ComplexityPremium:  "premium",
}

// SEOTier is the SEO package level
type SEOTier uint8

const (
	SEONone SEOTier = iota
	SEOBasic
	SEOStandard
	SEOAdvanced

	// NumSEOTiers is the number of SEO tiers
	NumSEOTiers = iota
)

var seoNames = [NumSEOTiers]string{
	SEONone:     "none",
	SEOBasic:    "basic",
	SEOStandard: "standard",
	SEOAdvanced: "advanced",
}

// PlanTier is a monthly care plan level, shared by maintenance and hosting
type PlanTier uint8

const (
	PlanNone PlanTier = iota
	PlanBasic
	PlanPro
	PlanEnterprise

	// NumPlanTiers is the number of plan tiers
	NumPlanTiers = iota
)

var planNames = [NumPlanTiers]string{
	PlanNone:       "none",
	PlanBasic:      "basic",
	PlanPro:        "pro",
	PlanEnterprise: "enterprise",
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(kind, s string, names []string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == needle {
			return i, nil
		}
	}
	return 0, errors.Newf(errors.TypeInput, "unknown %s %q (expected one of: %s)",
		kind, s, strings.Join(names, ", "))
}

// String returns the canonical name
func (p ProjectType) String() string { return enumName(projectTypeNames[:], int(p)) }

// Valid reports whether p is a known project type
func (p ProjectType) Valid() bool { return p < NumProjectTypes }

// MarshalText implements encoding.TextMarshaler
func (p ProjectType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (p *ProjectType) UnmarshalText(b []byte) error {
	v, err := ParseProjectType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseProjectType parses a project type name. "basic" is accepted as an
// alias for informational.
func ParseProjectType(s string) (ProjectType, error) {
	if strings.EqualFold(strings.TrimSpace(s), "basic") {
		return ProjectInformational, nil
	}
	v, err := parseEnum("project type", s, projectTypeNames[:])
	return ProjectType(v), err
}

// String returns the canonical name
func (c ComplexityTier) String() string { return enumName(complexityNames[:], int(c)) }

// Valid reports whether c is a known tier
func (c ComplexityTier) Valid() bool { return c < NumComplexityTiers }

// MarshalText implements encoding.TextMarshaler
func (c ComplexityTier) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (c *ComplexityTier) UnmarshalText(b []byte) error {
	v, err := ParseComplexityTier(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseComplexityTier parses a complexity tier name
func ParseComplexityTier(s string) (ComplexityTier, error) {
	v, err := parseEnum("complexity tier", s, complexityNames[:])
	return ComplexityTier(v), err
}

// String returns the canonical name
func (t SEOTier) String() string { return enumName(seoNames[:], int(t)) }

// Valid reports whether t is a known tier
func (t SEOTier) Valid() bool { return t < NumSEOTiers }

// MarshalText implements encoding.TextMarshaler
func (t SEOTier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (t *SEOTier) UnmarshalText(b []byte) error {
	v, err := ParseSEOTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseSEOTier parses an SEO tier name
func ParseSEOTier(s string) (SEOTier, error) {
	v, err := parseEnum("SEO tier", s, seoNames[:])
	return SEOTier(v), err
}

// String returns the canonical name
func (t PlanTier) String() string { return enumName(planNames[:], int(t)) }

// Valid reports whether t is a known tier
func (t PlanTier) Valid() bool { return t < NumPlanTiers }

// MarshalText implements encoding.TextMarshaler
func (t PlanTier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (t *PlanTier) UnmarshalText(b []byte) error {
	v, err := ParsePlanTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParsePlanTier parses a maintenance or hosting plan name
func ParsePlanTier(s string) (PlanTier, error) {
	v, err := parseEnum("plan tier", s, planNames[:])
	return PlanTier(v), err
}

// ProjectTypes returns all project types in declaration order
func ProjectTypes() []ProjectType {
	out := make([]ProjectType, NumProjectTypes)
	for i := range out {
		out[i] = ProjectType(i)
	}
	return out
}

// ComplexityTiers returns all complexity tiers in declaration order
func ComplexityTiers() []ComplexityTier {
	out := make([]ComplexityTier, NumComplexityTiers)
	for i := range out {
		out[i] = ComplexityTier(i)
	}
	return out
}

// SEOTiers returns all SEO tiers in declaration order
func SEOTiers() []SEOTier {
	out := make([]SEOTier, NumSEOTiers)
	for i := range out {
		out[i] = SEOTier(i)
	}
	return out
}

// PlanTiers returns all plan tiers in declaration order
func PlanTiers() []PlanTier {
	out := make([]PlanTier, NumPlanTiers)
	for i := range out {
		out[i] = PlanTier(i)
	}
	return out
}

// OptionSelection is the complete set of user-chosen pricing inputs.
// Values are copied, never shared; counts may hold raw user input until
// Normalize is applied.
type OptionSelection struct {
	ProjectType   ProjectType    `json:"project_type"`
	Pages         int            `json:"pages"`
	Complexity    ComplexityTier `json:"complexity"`
	Logo          bool           `json:"logo"`
	CopyPages     int            `json:"copy_pages"`
	SEO           SEOTier        `json:"seo"`
	PhotoSessions int            `json:"photo_sessions"`
	Languages     int            `json:"languages"`
	TrainingHours int            `json:"training_hours"`
	Maintenance   PlanTier       `json:"maintenance"`
	Hosting       PlanTier       `json:"hosting"`
}

// DefaultSelection returns the selection a fresh form starts from
func DefaultSelection() OptionSelection {
	return OptionSelection{
		ProjectType:   ProjectInformational,
		Pages:         5,
		Complexity:    ComplexityStandard,
		Logo:          true,
		CopyPages:     5,
		SEO:           SEOStandard,
		PhotoSessions: 0,
		Languages:     1,
		TrainingHours: 2,
		Maintenance:   PlanBasic,
		Hosting:       PlanPro,
	}
}

// Normalize clamps every count to its minimum. Pages and languages are at
// least one, all other counts at least zero.
func (s OptionSelection) Normalize() OptionSelection {
	s.Pages = max(1, s.Pages)
	s.CopyPages = max(0, s.CopyPages)
	s.PhotoSessions = max(0, s.PhotoSessions)
	s.Languages = max(1, s.Languages)
	s.TrainingHours = max(0, s.TrainingHours)
	return s
}

// ExtraLanguages returns the number of billed languages beyond the first
func (s OptionSelection) ExtraLanguages() int {
	return max(0, s.Languages-1)
}

// Fingerprint returns a canonical, order-stable encoding of the normalized
// selection.
func (s OptionSelection) Fingerprint() string {
	n := s.Normalize()
	return fmt.Sprintf(
		"project_type=%s;pages=%d;complexity=%s;logo=%t;copy_pages=%d;seo=%s;photo_sessions=%d;languages=%d;training_hours=%d;maintenance=%s;hosting=%s",
		n.ProjectType, n.Pages, n.Complexity, n.Logo, n.CopyPages, n.SEO,
		n.PhotoSessions, n.Languages, n.TrainingHours, n.Maintenance, n.Hosting,
	)
}
