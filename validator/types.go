package validator

import (
	"strings"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

func (st *compileState) typeChecks(_ *schema.Document, n *schema.Node) ([]check, error) {
	if n.Types.Empty() {
		return nil, nil
	}
	types := n.Types
	expected := strings.Join(types.Names(), " or ")
	return []check{func(value any, at *path) *schemaerr.ValidationError {
		if hasType(types, value) {
			return nil
		}
		got := jsonvalue.TypeName(value)
		return fail(value, at, "type", "expected %s, got %s", expected, got).
			WithDetails(map[string]any{"expected": types.Names(), "got": got})
	}}, nil
}

// hasType reports whether value belongs to one of types. "number" admits
// integers; "integer" admits integral floats such as 1.0.
func hasType(types schema.TypeSet, value any) bool {
	switch jsonvalue.KindOf(value) {
	case jsonvalue.Null:
		return types.Has(schema.TypeNull)
	case jsonvalue.Boolean:
		return types.Has(schema.TypeBoolean)
	case jsonvalue.Number:
		if types.Has(schema.TypeNumber) {
			return true
		}
		return types.Has(schema.TypeInteger) && jsonvalue.IsInteger(value)
	case jsonvalue.String:
		return types.Has(schema.TypeString)
	case jsonvalue.Array:
		return types.Has(schema.TypeArray)
	case jsonvalue.Object:
		return types.Has(schema.TypeObject)
	}
	return false
}

func (st *compileState) valueChecks(_ *schema.Document, n *schema.Node) ([]check, error) {
	var checks []check
	if n.Enum != nil {
		allowed, err := normalizeAll(n, "enum", n.Enum)
		if err != nil {
			return nil, err
		}
		listing := make([]string, len(allowed))
		for i, a := range allowed {
			listing[i] = jsonvalue.Canonical(a)
		}
		rendered := "[" + strings.Join(listing, ", ") + "]"
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			for _, a := range allowed {
				if jsonvalue.Equal(value, a) {
					return nil
				}
			}
			return fail(value, at, "enum", "must be one of %s", rendered).
				WithDetails(map[string]any{"allowed": allowed})
		})
	}
	if n.HasConst {
		consts, err := normalizeAll(n, "const", []any{n.Const})
		if err != nil {
			return nil, err
		}
		expected := consts[0]
		rendered := jsonvalue.Canonical(expected)
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			if jsonvalue.Equal(value, expected) {
				return nil
			}
			return fail(value, at, "const", "must equal %s", rendered).
				WithDetails(map[string]any{"expected": expected})
		})
	}
	return checks, nil
}

func normalizeAll(n *schema.Node, keyword string, values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, raw := range values {
		v, err := jsonvalue.Normalize(raw)
		if err != nil {
			return nil, schemaerr.NewSchemaError(n.Pointer, keyword, "value is not JSON").WithCause(err)
		}
		out[i] = v
	}
	return out, nil
}
