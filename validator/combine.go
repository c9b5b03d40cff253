package validator

import (
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

func (st *compileState) combinatorChecks(doc *schema.Document, n *schema.Node) ([]check, error) {
	var checks []check

	if len(n.AllOf) > 0 {
		all, err := st.children(doc, n.AllOf)
		if err != nil {
			return nil, err
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			for _, r := range all {
				if err := r.run(value, at); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if len(n.AnyOf) > 0 {
		anyOf, err := st.children(doc, n.AnyOf)
		if err != nil {
			return nil, err
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			causes := make([]*schemaerr.ValidationError, 0, len(anyOf))
			for _, r := range anyOf {
				err := r.run(value, at)
				if err == nil {
					return nil
				}
				causes = append(causes, err)
			}
			return fail(value, at, "anyOf", "must match at least one schema").WithCauses(causes...)
		})
	}

	if len(n.OneOf) > 0 {
		oneOf, err := st.children(doc, n.OneOf)
		if err != nil {
			return nil, err
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			var (
				matched []int
				causes  []*schemaerr.ValidationError
			)
			for i, r := range oneOf {
				if err := r.run(value, at); err != nil {
					causes = append(causes, err)
					continue
				}
				matched = append(matched, i)
			}
			switch len(matched) {
			case 1:
				return nil
			case 0:
				return fail(value, at, "oneOf", "must match exactly one schema, matched none").WithCauses(causes...)
			default:
				return fail(value, at, "oneOf", "must match exactly one schema, matched %d", len(matched)).
					WithDetails(map[string]any{"matched": matched})
			}
		})
	}

	if n.Not != nil {
		not, err := st.child(doc, n.Not)
		if err != nil {
			return nil, err
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			if not.run(value, at) != nil {
				return nil
			}
			return fail(value, at, "not", "must not match schema")
		})
	}

	if n.If != nil && (n.Then != nil || n.Else != nil) {
		cond, err := st.child(doc, n.If)
		if err != nil {
			return nil, err
		}
		var then, otherwise runner
		if n.Then != nil {
			if then, err = st.child(doc, n.Then); err != nil {
				return nil, err
			}
		}
		if n.Else != nil {
			if otherwise, err = st.child(doc, n.Else); err != nil {
				return nil, err
			}
		}
		checks = append(checks, func(value any, at *path) *schemaerr.ValidationError {
			branch := otherwise
			if cond.run(value, at) == nil {
				branch = then
			}
			if branch == nil {
				return nil
			}
			return branch.run(value, at)
		})
	}

	return checks, nil
}

func (st *compileState) children(doc *schema.Document, nodes []*schema.Node) ([]runner, error) {
	runners := make([]runner, len(nodes))
	for i, node := range nodes {
		r, err := st.child(doc, node)
		if err != nil {
			return nil, err
		}
		runners[i] = r
	}
	return runners, nil
}

// refChecks resolves "$ref" at compile time. The target's error passes
// through unchanged.
func (st *compileState) refChecks(doc *schema.Document, n *schema.Node) ([]check, error) {
	if n.Ref == "" {
		return nil, nil
	}
	target, targetDoc, err := st.c.resolver.Resolve(doc, n.Ref)
	if err != nil {
		return nil, err
	}
	r, err := st.child(targetDoc, target)
	if err != nil {
		return nil, err
	}
	return []check{r.run}, nil
}
