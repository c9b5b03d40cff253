package validator

import (
	"math"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// multipleOfTolerance is the remainder, relative to the divisor, below
// which a float counts as a multiple.
const multipleOfTolerance = 1e-9

func (st *compileState) numberChecks(_ *schema.Document, n *schema.Node) ([]check, error) {
	k := n.Numeric
	if k == nil {
		return nil, nil
	}
	var checks []check
	if k.MultipleOf != nil {
		m := *k.MultipleOf
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			if !jsonvalue.IsNumber(value) || isMultiple(value, m) {
				return nil
			}
			return fail(value, at, "multipleOf", "must be a multiple of %s", jsonvalue.FormatNumber(m)).
				WithDetails(map[string]any{"multiple_of": m})
		})
	}
	type bound struct {
		keyword string
		limit   *float64
		ok      func(cmp int) bool
		message string
		detail  string
	}
	bounds := []bound{
		{"minimum", k.Minimum, func(c int) bool { return c >= 0 }, "must be greater than or equal to %s", "expected_minimum"},
		{"maximum", k.Maximum, func(c int) bool { return c <= 0 }, "must be less than or equal to %s", "expected_maximum"},
		{"exclusiveMinimum", k.ExclusiveMinimum, func(c int) bool { return c > 0 }, "must be greater than %s", "expected_minimum"},
		{"exclusiveMaximum", k.ExclusiveMaximum, func(c int) bool { return c < 0 }, "must be less than %s", "expected_maximum"},
	}
	for _, b := range bounds {
		if b.limit == nil {
			continue
		}
		limit := *b.limit
		rendered := jsonvalue.FormatNumber(limit)
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			if !jsonvalue.IsNumber(value) || b.ok(jsonvalue.CompareNumbers(value, limit)) {
				return nil
			}
			return fail(value, at, b.keyword, b.message, rendered).
				WithDetails(map[string]any{b.detail: limit})
		})
	}
	return checks, nil
}

// isMultiple is exact when both operands are integers and uses the IEEE
// remainder with a relative tolerance otherwise.
func isMultiple(value any, m float64) bool {
	if mi := int64(m); float64(mi) == m && mi != 0 {
		if vi, ok := jsonvalue.Int64(value); ok {
			return vi%mi == 0
		}
	}
	f, ok := jsonvalue.Float(value)
	if !ok {
		return false
	}
	r := math.Remainder(f, m)
	return math.Abs(r) <= multipleOfTolerance*math.Abs(m)
}
