// Package hcl loads option selections from HCL quote files.
//
// A quote file sets selection attributes at the top level and may declare
// variables with defaults:
//
//	variable "pages" {
//	  default = 5
//	}
//
//	project_type = "ecommerce"
//	pages        = var.pages
//	seo          = "advanced"
//
// Unset attributes keep their DefaultSelection value.
package hcl

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"site-quote/core/types"
	"site-quote/internal/errors"
)

// field applies one decoded attribute to a selection
type field func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error

var fields = map[string]field{
	"project_type": func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error {
		s, err := asString(val, attr)
		if err != nil {
			return err
		}
		sel.ProjectType, err = types.ParseProjectType(s)
		return wrapEnum(attr, err)
	},
	"pages": intField(func(s *types.OptionSelection, n int) { s.Pages = n }),
	"complexity": func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error {
		s, err := asString(val, attr)
		if err != nil {
			return err
		}
		sel.Complexity, err = types.ParseComplexityTier(s)
		return wrapEnum(attr, err)
	},
	"logo": func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error {
		b, err := asBool(val, attr)
		sel.Logo = b
		return err
	},
	"copy_pages": intField(func(s *types.OptionSelection, n int) { s.CopyPages = n }),
	"seo": func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error {
		s, err := asString(val, attr)
		if err != nil {
			return err
		}
		sel.SEO, err = types.ParseSEOTier(s)
		return wrapEnum(attr, err)
	},
	"photo_sessions": intField(func(s *types.OptionSelection, n int) { s.PhotoSessions = n }),
	"languages":      intField(func(s *types.OptionSelection, n int) { s.Languages = n }),
	"training_hours": intField(func(s *types.OptionSelection, n int) { s.TrainingHours = n }),
	"maintenance":    planField(func(s *types.OptionSelection, p types.PlanTier) { s.Maintenance = p }),
	"hosting":        planField(func(s *types.OptionSelection, p types.PlanTier) { s.Hosting = p }),
}

func intField(set func(*types.OptionSelection, int)) field {
	return func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error {
		n, err := asInt(val, attr)
		if err != nil {
			return err
		}
		set(sel, n)
		return nil
	}
}

func planField(set func(*types.OptionSelection, types.PlanTier)) field {
	return func(sel *types.OptionSelection, val cty.Value, attr *hcl.Attribute) error {
		s, err := asString(val, attr)
		if err != nil {
			return err
		}
		p, err := types.ParsePlanTier(s)
		if err != nil {
			return wrapEnum(attr, err)
		}
		set(sel, p)
		return nil
	}
}

func wrapEnum(attr *hcl.Attribute, err error) error {
	if err == nil {
		return nil
	}
	return attrError(attr, err.Error(), nil)
}

// Loader parses quote files
type Loader struct {
	parser    *hclparse.Parser
	variables map[string]cty.Value
}

// NewLoader creates a loader. vars override variable defaults declared in
// the file and may be nil.
func NewLoader(vars map[string]cty.Value) *Loader {
	if vars == nil {
		vars = map[string]cty.Value{}
	}
	return &Loader{
		parser:    hclparse.NewParser(),
		variables: vars,
	}
}

// LoadFile reads and decodes a quote file
func (l *Loader) LoadFile(path string) (types.OptionSelection, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return types.OptionSelection{}, errors.Wrap(errors.TypeInput, "failed to read quote file", err).WithContext("path", path)
	}
	return l.Load(src, path)
}

// Load decodes quote source. The returned selection is normalized.
func (l *Loader) Load(src []byte, filename string) (types.OptionSelection, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return types.OptionSelection{}, diagError(diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return types.OptionSelection{}, errors.Internal("unexpected quote file body", nil)
	}
	for _, block := range body.Blocks {
		if block.Type != "variable" {
			return types.OptionSelection{}, errors.Newf(errors.TypeInput, "unknown quote block %q (%s:%d)",
				block.Type, filename, block.TypeRange.Start.Line)
		}
	}

	content, _, diags := body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "variable", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return types.OptionSelection{}, diagError(diags)
	}

	vars, err := l.resolveVariables(content.Blocks)
	if err != nil {
		return types.OptionSelection{}, err
	}
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(vars)},
	}

	// Selection attributes are read straight off the syntax body; a
	// JustAttributes pass would reject the variable blocks.
	attrs := make(hcl.Attributes, len(body.Attributes))
	for name, attr := range body.Attributes {
		attrs[name] = attr.AsHCLAttribute()
	}

	sel := types.DefaultSelection()
	var unknown []string
	for _, name := range sortedNames(attrs) {
		attr := attrs[name]
		apply, ok := fields[name]
		if !ok {
			unknown = append(unknown, fmt.Sprintf("%s (%s:%d)", name, attr.Range.Filename, attr.Range.Start.Line))
			continue
		}
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return types.OptionSelection{}, diagError(diags)
		}
		if err := apply(&sel, val, attr); err != nil {
			return types.OptionSelection{}, err
		}
	}
	if len(unknown) > 0 {
		return types.OptionSelection{}, errors.Newf(errors.TypeInput, "unknown quote attributes: %s", strings.Join(unknown, ", "))
	}

	return sel.Normalize(), nil
}

// resolveVariables merges declared defaults with loader overrides
func (l *Loader) resolveVariables(blocks hcl.Blocks) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value, len(blocks)+len(l.variables))
	for _, block := range blocks {
		name := block.Labels[0]
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diagError(diags)
		}
		def, ok := attrs["default"]
		if !ok {
			continue
		}
		val, diags := def.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diagError(diags)
		}
		vars[name] = val
	}
	for name, val := range l.variables {
		vars[name] = val
	}
	return vars, nil
}

func sortedNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// diagError converts the first error diagnostic into a parsing error
func diagError(diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("%s:%d: %s", diag.Subject.Filename, diag.Subject.Start.Line, msg)
		}
		return errors.Parsing(msg, diags)
	}
	return errors.Parsing("invalid quote file", diags)
}
