package validator

import (
	"fmt"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// runner applies a compiled schema to a normalized value found at path.
type runner interface {
	run(value any, at *path) *schemaerr.ValidationError
}

// check is one keyword check of a Validator.
type check func(value any, at *path) *schemaerr.ValidationError

// Validator is a compiled schema. It is immutable and safe for concurrent
// use.
type Validator struct {
	node   *schema.Node
	doc    *schema.Document
	checks []check
}

// Validate checks value against the schema and returns value unchanged on
// success. On failure the error is a *schemaerr.ValidationError.
//
// value may come from encoding/json (including json.Number), from yaml.v3,
// or be a native Go slice, map or struct.
func (v *Validator) Validate(value any) (any, error) {
	normalized, err := jsonvalue.Normalize(value)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if verr := v.run(normalized, nil); verr != nil {
		return nil, verr
	}
	return value, nil
}

// Func returns Validate as a plain function.
func (v *Validator) Func() func(any) (any, error) {
	return v.Validate
}

// Node returns the compiled schema.
func (v *Validator) Node() *schema.Node {
	return v.node
}

// Document returns the document the schema belongs to.
func (v *Validator) Document() *schema.Document {
	return v.doc
}

func (v *Validator) run(value any, at *path) *schemaerr.ValidationError {
	for _, c := range v.checks {
		if err := c(value, at); err != nil {
			return err
		}
	}
	return nil
}

// deferred is a reference to a schema that was still being compiled when
// the reference was reached. Its target is bound to the validator built by
// the same compilation before any of them is published.
type deferred struct {
	node   *schema.Node
	target *Validator
}

func (d *deferred) run(value any, at *path) *schemaerr.ValidationError {
	return d.target.run(value, at)
}

// path is the location of a value as a linked list from the leaf, so
// descending costs one allocation and no copying.
type path struct {
	parent *path
	seg    schemaerr.Segment
}

func (p *path) key(name string) *path {
	return &path{parent: p, seg: schemaerr.Key(name)}
}

func (p *path) index(i int) *path {
	return &path{parent: p, seg: schemaerr.Index(i)}
}

// materialize converts p into a root-first schemaerr.Path.
func (p *path) materialize() schemaerr.Path {
	n := 0
	for cur := p; cur != nil; cur = cur.parent {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make(schemaerr.Path, n)
	for cur := p; cur != nil; cur = cur.parent {
		n--
		out[n] = cur.seg
	}
	return out
}

// fail builds the error for a failed keyword check.
func fail(value any, at *path, keyword, format string, args ...any) *schemaerr.ValidationError {
	return schemaerr.Newf(keyword, format, args...).
		WithPath(at.materialize()).
		WithValue(value)
}

func falseSchema(value any, at *path) *schemaerr.ValidationError {
	return fail(value, at, "false", "no value is allowed here")
}
