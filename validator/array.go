package validator

import (
	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

func (st *compileState) arrayChecks(doc *schema.Document, n *schema.Node) ([]check, error) {
	k := n.Array
	if k == nil {
		return nil, nil
	}
	var checks []check
	if k.MinItems != nil {
		minimum := *k.MinItems
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			a, ok := value.([]any)
			if !ok || len(a) >= minimum {
				return nil
			}
			return fail(value, at, "minItems", "must have at least %d items, got %d", minimum, len(a)).
				WithDetails(map[string]any{"expected_minimum": minimum})
		})
	}
	if k.MaxItems != nil {
		maximum := *k.MaxItems
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			a, ok := value.([]any)
			if !ok || len(a) <= maximum {
				return nil
			}
			return fail(value, at, "maxItems", "must have at most %d items, got %d", maximum, len(a)).
				WithDetails(map[string]any{"expected_maximum": maximum})
		})
	}
	if k.UniqueItems {
		checks = append(checks, uniqueItems)
	}

	items, err := st.itemRunners(doc, k)
	if err != nil {
		return nil, err
	}
	if items != nil {
		checks = append(checks, items)
	}

	if k.Contains != nil {
		contains, err := st.descendant(doc, k.Contains)
		if err != nil {
			return nil, err
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			a, ok := value.([]any)
			if !ok {
				return nil
			}
			for i, item := range a {
				if contains.run(item, at.index(i)) == nil {
					return nil
				}
			}
			return fail(value, at, "contains", "must contain at least one matching item")
		})
	}
	return checks, nil
}

// uniqueItems compares items by their canonical encoding, so 1 and 1.0
// collide and object key order is irrelevant.
func uniqueItems(value any, at *path) *schemaerr.ValidationError {
	a, ok := value.([]any)
	if !ok || len(a) < 2 {
		return nil
	}
	seen := make(map[string]int, len(a))
	for i, item := range a {
		key := jsonvalue.Canonical(item)
		if j, dup := seen[key]; dup {
			return fail(value, at, "uniqueItems", "items at index %d and %d are equal", j, i).
				WithDetails(map[string]any{"duplicates": []int{j, i}})
		}
		seen[key] = i
	}
	return nil
}

// itemRunners compiles "items" and "additionalItems" into one exhaustive
// check over every item.
func (st *compileState) itemRunners(doc *schema.Document, k *schema.ArrayKeywords) (check, error) {
	var (
		single runner
		tuple  []runner
		extra  runner
		closed bool
		err    error
	)
	switch {
	case k.TupleItems != nil:
		tuple = make([]runner, len(k.TupleItems))
		for i, item := range k.TupleItems {
			if tuple[i], err = st.descendant(doc, item); err != nil {
				return nil, err
			}
		}
		if a := k.AdditionalItems; a != nil {
			if a.IsFalse() {
				closed = true
			} else if !a.IsTrue() {
				if extra, err = st.descendant(doc, a); err != nil {
					return nil, err
				}
			}
		}
	case k.Items != nil:
		if k.Items.IsTrue() {
			return nil, nil
		}
		if single, err = st.descendant(doc, k.Items); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	return func(value any, at *path) *schemaerr.ValidationError {
		a, ok := value.([]any)
		if !ok {
			return nil
		}
		if closed && len(a) > len(tuple) {
			return fail(value, at, "additionalItems", "must have at most %d items, got %d", len(tuple), len(a)).
				WithDetails(map[string]any{"expected_maximum": len(tuple)})
		}
		var causes []*schemaerr.ValidationError
		for i, item := range a {
			r := single
			if tuple != nil {
				r = extra
				if i < len(tuple) {
					r = tuple[i]
				}
			}
			if r == nil {
				continue
			}
			if err := r.run(item, at.index(i)); err != nil {
				causes = append(causes, err)
			}
		}
		if len(causes) == 0 {
			return nil
		}
		return fail(value, at, "items", "array has %d invalid %s", len(causes), plural(len(causes), "item", "items")).
			WithCauses(causes...)
	}, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
