package validator

import (
	"regexp"
	"sort"

	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

type patternRunner struct {
	re *regexp.Regexp
	r  runner
}

// objectRunners holds the compiled per-property subschemas of one node.
type objectRunners struct {
	properties map[string]runner
	patterns   []patternRunner
	additional runner
	closed     bool
	names      runner
}

func (st *compileState) objectChecks(doc *schema.Document, n *schema.Node) ([]check, error) {
	k := n.Object
	if k == nil {
		return nil, nil
	}
	var checks []check
	if k.MinProperties != nil {
		minimum := *k.MinProperties
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			o, ok := value.(map[string]any)
			if !ok || len(o) >= minimum {
				return nil
			}
			return fail(value, at, "minProperties", "must have at least %d properties, got %d", minimum, len(o)).
				WithDetails(map[string]any{"expected_minimum": minimum})
		})
	}
	if k.MaxProperties != nil {
		maximum := *k.MaxProperties
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			o, ok := value.(map[string]any)
			if !ok || len(o) <= maximum {
				return nil
			}
			return fail(value, at, "maxProperties", "must have at most %d properties, got %d", maximum, len(o)).
				WithDetails(map[string]any{"expected_maximum": maximum})
		})
	}
	if len(k.Required) > 0 {
		required := k.Required
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			o, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for _, name := range required {
				if _, present := o[name]; !present {
					return fail(value, at, "required", "missing required property %q", name).
						WithDetails(map[string]any{"property": name})
				}
			}
			return nil
		})
	}
	if len(k.DependentRequired) > 0 {
		deps := k.DependentRequired
		names := sortedNames(deps)
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			o, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for _, name := range names {
				if _, present := o[name]; !present {
					continue
				}
				for _, dep := range deps[name] {
					if _, present := o[dep]; !present {
						return fail(value, at, "dependentRequired", "property %q requires property %q", name, dep).
							WithDetails(map[string]any{"property": name, "missing": dep})
					}
				}
			}
			return nil
		})
	}

	runners, err := st.objectRunners(doc, n)
	if err != nil {
		return nil, err
	}
	if runners != nil {
		checks = append(checks, runners.check)
	}

	if len(k.DependentSchemas) > 0 {
		names := sortedNames(k.DependentSchemas)
		deps := make([]runner, len(names))
		for i, name := range names {
			if deps[i], err = st.child(doc, k.DependentSchemas[name]); err != nil {
				return nil, err
			}
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			o, ok := value.(map[string]any)
			if !ok {
				return nil
			}
			for i, name := range names {
				if _, present := o[name]; !present {
					continue
				}
				if err := deps[i].run(value, at); err != nil {
					return fail(value, at, "dependentSchemas", "property %q dependency is not satisfied", name).
						WithDetails(map[string]any{"property": name}).
						WithCauses(err)
				}
			}
			return nil
		})
	}
	return checks, nil
}

func (st *compileState) objectRunners(doc *schema.Document, n *schema.Node) (*objectRunners, error) {
	k := n.Object
	if k.Properties == nil && k.PatternProperties == nil && k.AdditionalProperties == nil && k.PropertyNames == nil {
		return nil, nil
	}
	o := &objectRunners{properties: make(map[string]runner, len(k.Properties))}
	var err error
	for _, name := range sortedNames(k.Properties) {
		if o.properties[name], err = st.descendant(doc, k.Properties[name]); err != nil {
			return nil, err
		}
	}
	for _, expr := range sortedNames(k.PatternProperties) {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, schemaerr.NewSchemaError(n.Pointer+"/patternProperties/"+schema.EscapeToken(expr),
				"patternProperties", "invalid regular expression").WithCause(err)
		}
		r, err := st.descendant(doc, k.PatternProperties[expr])
		if err != nil {
			return nil, err
		}
		o.patterns = append(o.patterns, patternRunner{re: re, r: r})
	}
	if a := k.AdditionalProperties; a != nil {
		if a.IsFalse() {
			o.closed = true
		} else if !a.IsTrue() {
			if o.additional, err = st.descendant(doc, a); err != nil {
				return nil, err
			}
		}
	}
	if k.PropertyNames != nil {
		if o.names, err = st.descendant(doc, k.PropertyNames); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// check validates every property in key order and reports all failures
// under one object error.
func (o *objectRunners) check(value any, at *path) *schemaerr.ValidationError {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	var causes []*schemaerr.ValidationError
	for _, name := range sortedNames(obj) {
		if err := o.property(name, obj[name], at.key(name)); err != nil {
			causes = append(causes, err)
		}
	}
	if len(causes) == 0 {
		return nil
	}
	return fail(value, at, "properties", "object has %d invalid %s", len(causes), plural(len(causes), "property", "properties")).
		WithKind(schemaerr.KindObject).
		WithCauses(causes...)
}

func (o *objectRunners) property(name string, value any, at *path) *schemaerr.ValidationError {
	if o.names != nil {
		if err := o.names.run(name, at); err != nil {
			return fail(value, at, "propertyNames", "invalid property name %q", name).
				WithCauses(err)
		}
	}

	matched := false
	if r, ok := o.properties[name]; ok {
		matched = true
		if err := r.run(value, at); err != nil {
			return invalidValue(value, at, "properties", err)
		}
	}
	for _, p := range o.patterns {
		if !p.re.MatchString(name) {
			continue
		}
		matched = true
		if err := p.r.run(value, at); err != nil {
			return invalidValue(value, at, "patternProperties", err)
		}
	}
	if matched {
		return nil
	}

	switch {
	case o.closed:
		return fail(value, at, "additionalProperties", "property %q is not allowed", name).
			WithDetails(map[string]any{"property": name})
	case o.additional != nil:
		if err := o.additional.run(value, at); err != nil {
			return invalidValue(value, at, "additionalProperties", err).
				WithKind(schemaerr.KindPropertyValue)
		}
	}
	return nil
}

func invalidValue(value any, at *path, keyword string, cause *schemaerr.ValidationError) *schemaerr.ValidationError {
	return fail(value, at, keyword, "invalid property value").WithCauses(cause)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

