package validator

import (
	"regexp"
	"unicode/utf8"

	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

func (st *compileState) stringChecks(_ *schema.Document, n *schema.Node) ([]check, error) {
	var checks []check
	if k := n.String; k != nil {
		if k.MinLength != nil {
			minimum := *k.MinLength
			checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
				s, ok := value.(string)
				if !ok {
					return nil
				}
				if l := utf8.RuneCountInString(s); l < minimum {
					return fail(value, at, "minLength", "length must be at least %d, got %d", minimum, l).
						WithDetails(map[string]any{"expected_minimum": minimum})
				}
				return nil
			})
		}
		if k.MaxLength != nil {
			maximum := *k.MaxLength
			checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
				s, ok := value.(string)
				if !ok {
					return nil
				}
				if l := utf8.RuneCountInString(s); l > maximum {
					return fail(value, at, "maxLength", "length must be at most %d, got %d", maximum, l).
						WithDetails(map[string]any{"expected_maximum": maximum})
				}
				return nil
			})
		}
		if k.Pattern != "" {
			re, err := regexp.Compile(k.Pattern)
			if err != nil {
				return nil, schemaerr.NewSchemaError(n.Pointer, "pattern", "invalid regular expression").WithCause(err)
			}
			checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
				s, ok := value.(string)
				if !ok || re.MatchString(s) {
					return nil
				}
				return fail(value, at, "pattern", "must match pattern %q", re.String()).
					WithDetails(map[string]any{"pattern": re.String()})
			})
		}
	}
	if n.Format != "" {
		name, formats := n.Format, st.c.formats
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			s, ok := value.(string)
			if !ok {
				return nil
			}
			if err := formats.Check(name, s); err != nil {
				return fail(value, at, "format", "does not match format %q: %v", name, err).
					WithDetails(map[string]any{"format": name})
			}
			return nil
		})
	}
	return checks, nil
}
