// Package hcl - quote value conversion
// Attribute values are converted to the target type explicitly; unknown and
// null values are rejected rather than defaulted.
package hcl

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"site-quote/internal/errors"
)

// mustBeKnown fails for values that cannot be used as quote input
func mustBeKnown(val cty.Value, attr *hcl.Attribute) error {
	if !val.IsKnown() {
		return attrError(attr, "value is not known", nil)
	}
	if val.IsNull() {
		return attrError(attr, "value is null", nil)
	}
	return nil
}

func asString(val cty.Value, attr *hcl.Attribute) (string, error) {
	if err := mustBeKnown(val, attr); err != nil {
		return "", err
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", attrError(attr, "expected a string", err)
	}
	return s.AsString(), nil
}

// asInt converts to a whole number, flooring fractions
func asInt(val cty.Value, attr *hcl.Attribute) (int, error) {
	if err := mustBeKnown(val, attr); err != nil {
		return 0, err
	}
	n, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, attrError(attr, "expected a number", err)
	}
	f, _ := n.AsBigFloat().Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, attrError(attr, "number out of range", nil)
	}
	f = math.Floor(f)
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	return int(f), nil
}

func asBool(val cty.Value, attr *hcl.Attribute) (bool, error) {
	if err := mustBeKnown(val, attr); err != nil {
		return false, err
	}
	b, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, attrError(attr, "expected a bool", err)
	}
	return b.True(), nil
}

func attrError(attr *hcl.Attribute, msg string, cause error) error {
	where := fmt.Sprintf("%s:%d", attr.Range.Filename, attr.Range.Start.Line)
	full := fmt.Sprintf("%s: %s: %s", where, attr.Name, msg)
	if cause != nil {
		return errors.Wrap(errors.TypeInput, full, cause)
	}
	return errors.New(errors.TypeInput, full)
}

// ParseVars parses key=value assignments. Values that look like numbers or
// bools are typed accordingly; everything else is a string.
func ParseVars(assignments []string) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value, len(assignments))
	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || !hclsyntax.ValidIdentifier(key) {
			return nil, errors.Newf(errors.TypeInput, "invalid variable %q (expected name=value)", a)
		}
		vars[key] = literal(strings.TrimSpace(raw))
	}
	return vars, nil
}

func literal(raw string) cty.Value {
	switch raw {
	case "true":
		return cty.True
	case "false":
		return cty.False
	}
	if n, err := cty.ParseNumberVal(raw); err == nil {
		return n
	}
	return cty.StringVal(raw)
}
