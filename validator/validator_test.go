package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/jsonschema/format"
	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/ref"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 2},
		"age": {"type": "integer"}
	}
}`

const treeSchema = `{
	"$ref": "#/$defs/node",
	"$defs": {
		"node": {
			"type": "object",
			"properties": {
				"children": {"type": "array", "items": {"$ref": "#/$defs/node"}}
			}
		}
	}
}`

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestValidateReturnsOriginalValue(t *testing.T) {
	v := compileJSON(t, personSchema)

	m := obj{"name": "Bob", "age": 12}
	got, err := v.Validate(m)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	p := &person{Name: "Bob", Age: 12}
	got, err = v.Validate(p)
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = v.Validate(&person{Name: "B"})
	assert.ErrorIs(t, err, schemaerr.KindMinimumLength)
}

func TestValidateErrorPaths(t *testing.T) {
	v := compileJSON(t, personSchema)

	_, err := v.Validate(obj{"name": "Bob", "age": "12"})
	require.Error(t, err)
	typeErr := schemaerr.Find(err, schemaerr.KindType)
	require.NotNil(t, typeErr)
	assert.Equal(t, "age", typeErr.Path.String())
	assert.Equal(t, "12", typeErr.Value)

	_, err = v.Validate(obj{"name": "B"})
	require.Error(t, err)
	lengthErr := schemaerr.Find(err, schemaerr.KindMinimum)
	require.NotNil(t, lengthErr)
	assert.Equal(t, schemaerr.KindMinimumLength, lengthErr.Kind)
	assert.Equal(t, "name", lengthErr.Path.String())
	assert.Equal(t, 2, lengthErr.Details["expected_minimum"])
}

func TestValidateReportsEveryProperty(t *testing.T) {
	v := compileJSON(t, personSchema)

	_, err := v.Validate(obj{"name": "B", "age": "12"})
	require.Error(t, err)
	assert.Equal(t,
		"object has 2 invalid properties: age: invalid property value: expected integer, got string (and 1 more)",
		err.Error())

	verr, ok := schemaerr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, schemaerr.KindObject, verr.Kind)
	require.Len(t, verr.Causes, 2)
	for _, c := range verr.Causes {
		assert.Equal(t, schemaerr.KindPropertyValue, c.Kind)
	}

	var paths []string
	for _, leaf := range verr.Leaves() {
		paths = append(paths, leaf.Path.String())
	}
	assert.Equal(t, []string{"age", "name"}, paths)
}

func TestValidateRecursiveSchema(t *testing.T) {
	v := compileJSON(t, treeSchema)

	_, err := v.Validate(obj{"children": []any{obj{"children": []any{}}}})
	require.NoError(t, err)

	_, err = v.Validate(obj{"children": []any{obj{"children": "x"}}})
	require.Error(t, err)
	typeErr := schemaerr.Find(err, schemaerr.KindType)
	require.NotNil(t, typeErr)
	assert.Equal(t, "children[0].children", typeErr.Path.String())
	assert.Equal(t, "/children/0/children", typeErr.Path.Pointer())

	deep := obj{}
	for i := 0; i < 50; i++ {
		deep = obj{"children": []any{deep}}
	}
	_, err = v.Validate(deep)
	assert.NoError(t, err)
}

func TestReferenceTransparency(t *testing.T) {
	inline := compileJSON(t, `{
		"type": "object",
		"properties": {"a": {"type": "integer", "minimum": 0}, "b": {"type": "integer", "minimum": 0}}
	}`)
	referenced := compileJSON(t, `{
		"type": "object",
		"properties": {"a": {"$ref": "#/$defs/count"}, "b": {"$ref": "#/definitions/count"}},
		"$defs": {"count": {"type": "integer", "minimum": 0}},
		"definitions": {"count": {"type": "integer", "minimum": 0}}
	}`)

	values := []any{
		obj{"a": 1, "b": 2},
		obj{"a": -1},
		obj{"a": "x", "b": -3},
		obj{},
		[]any{},
	}
	for _, value := range values {
		_, inlineErr := inline.Validate(value)
		_, refErr := referenced.Validate(value)
		if inlineErr == nil {
			assert.NoError(t, refErr, "value %v", value)
			continue
		}
		require.Error(t, refErr, "value %v", value)
		assert.Equal(t, inlineErr.Error(), refErr.Error())
	}
}

func TestFormats(t *testing.T) {
	registry := format.NewRegistry()
	v := compileJSON(t, `{"format":"my-format"}`, WithFormats(registry))

	// Unregistered formats never fail, and registration after compiling
	// still applies.
	_, err := v.Validate("test")
	require.NoError(t, err)

	registry.Register("my-format", func(s string) error {
		if !strings.HasPrefix(s, "my-") {
			return errors.New("must start with my-")
		}
		return nil
	})

	_, err = v.Validate("my-test")
	require.NoError(t, err)

	_, err = v.Validate("test")
	require.Error(t, err)
	formatErr := schemaerr.Find(err, schemaerr.KindFormat)
	require.NotNil(t, formatErr)
	assert.Contains(t, formatErr.Message, "my-format")
	assert.Contains(t, formatErr.Message, "must start with my-")

	_, err = v.Validate(42)
	assert.NoError(t, err, "format applies to strings only")
}

func TestFormatCheckerPanics(t *testing.T) {
	registry := format.NewRegistry()
	registry.Register("explosive", func(string) error { panic("boom") })
	v := compileJSON(t, `{"format":"explosive"}`, WithFormats(registry))

	_, err := v.Validate("x")
	assert.ErrorIs(t, err, schemaerr.KindFormat)
}

func TestBuiltinFormats(t *testing.T) {
	v := compileJSON(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "format": "uuid"},
			"at": {"type": "string", "format": "date-time"}
		}
	}`)

	_, err := v.Validate(obj{"id": "4f1c2a9e-0d3b-4c8a-9b7e-2f5d6a1c3e8b", "at": "2024-02-29T12:00:00Z"})
	require.NoError(t, err)

	_, err = v.Validate(obj{"id": "nope", "at": "2023-02-29T12:00:00Z"})
	require.Error(t, err)
	verr, _ := schemaerr.AsValidation(err)
	assert.Len(t, verr.Leaves(), 2)
}

func TestCompileSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		keyword string
		pointer string
	}{
		{"keyword excluded by type", `{"type":"string","exclusiveMinimum":1}`, "exclusiveMinimum", "#"},
		{"nested keyword excluded by type", `{"properties":{"n":{"type":"integer","maxLength":3}}}`, "maxLength", "#/properties/n"},
		{"invalid pattern", `{"pattern":"("}`, "pattern", "#"},
		{"invalid pattern property", `{"patternProperties":{"(":{}}}`, "patternProperties", "#/patternProperties/("},
		{"reference to itself", `{"$ref":"#"}`, "$ref", "#"},
		{"mutual references", `{"$ref":"#/$defs/a","$defs":{"a":{"$ref":"#/$defs/b"},"b":{"$ref":"#/$defs/a"}}}`, "$ref", "#/$defs/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompiler()
			require.NoError(t, err)

			_, err = c.Compile([]byte(tt.schema))
			require.Error(t, err)
			assert.ErrorIs(t, err, schemaerr.ErrInvalidSchema)

			var schemaErr *schemaerr.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.keyword, schemaErr.Keyword)
			assert.Equal(t, tt.pointer, schemaErr.Pointer)

			cached := 0
			c.cache.Range(func(_, _ any) bool {
				cached++
				return true
			})
			assert.Zero(t, cached, "failed compilation must not populate the cache")
		})
	}
}

func TestFormatIsExemptFromTypeFamilies(t *testing.T) {
	v := compileJSON(t, `{"type":"integer","format":"int32"}`)
	_, err := v.Validate(7)
	assert.NoError(t, err)
}

func TestCompileUnresolvableReference(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	_, err = c.Compile([]byte(`{"properties":{"a":{"$ref":"#/$defs/missing"}}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerr.ErrUnresolvable)

	var refErr *schemaerr.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "#/$defs/missing", refErr.Ref)
}

func TestCompileUnsupportedInput(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	_, err = c.Compile(42)
	assert.ErrorIs(t, err, schemaerr.ErrUnsupportedInput)
}

func TestValidateUnsupportedValue(t *testing.T) {
	v := compileJSON(t, `{}`)
	_, err := v.Validate(make(chan int))
	assert.ErrorIs(t, err, jsonvalue.ErrUnsupported)
	_, isValidation := schemaerr.AsValidation(err)
	assert.False(t, isValidation)
}

func TestCompileCachesByNode(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	node := schema.Object(map[string]*schema.Node{"name": schema.String()}, "name")
	first, err := c.Compile(node)
	require.NoError(t, err)
	second, err := c.Compile(node)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, node, first.Node())

	// A subschema compiled on its own reuses the validator built for it
	// as part of its parent.
	nameNode := node.Object.Properties["name"]
	named, err := c.CompileNode(first.Document(), nameNode)
	require.NoError(t, err)
	assert.Same(t, nameNode, named.Node())
	again, err := c.Compile(nameNode)
	require.NoError(t, err)
	assert.Same(t, named, again)
}

func TestCompileConcurrent(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)
	doc, err := schema.NewDocument("", []byte(treeSchema))
	require.NoError(t, err)

	const workers = 32
	results := make([]*Validator, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.CompileNode(doc, doc.Root)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = v
			if _, err := v.Validate(obj{"children": []any{obj{}}}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	for _, v := range results[1:] {
		assert.Same(t, results[0], v)
	}
}

func TestRootDocument(t *testing.T) {
	openapi := obj{
		"openapi": "3.0.3",
		"components": obj{
			"schemas": obj{
				"Pet": obj{
					"type":     "object",
					"required": []any{"name"},
					"properties": obj{
						"name": obj{"type": "string"},
						"tag":  obj{"$ref": "#/components/schemas/Tag"},
					},
				},
				"Tag": obj{"type": "string", "minLength": 1},
			},
		},
	}
	c, err := NewCompiler(WithRootDocument(openapi))
	require.NoError(t, err)

	pet, err := c.CompileRef("#/components/schemas/Pet")
	require.NoError(t, err)

	_, err = pet.Validate(obj{"name": "Rex", "tag": "dog"})
	require.NoError(t, err)

	_, err = pet.Validate(obj{"name": "Rex", "tag": ""})
	require.Error(t, err)
	lengthErr := schemaerr.Find(err, schemaerr.KindMinimumLength)
	require.NotNil(t, lengthErr)
	assert.Equal(t, "tag", lengthErr.Path.String())

	// Pointers missing from a standalone schema resolve against the root.
	tags, err := c.Compile(obj{"type": "array", "items": obj{"$ref": "#/components/schemas/Tag"}})
	require.NoError(t, err)
	_, err = tags.Validate([]any{"a", ""})
	assert.ErrorIs(t, err, schemaerr.KindMinimumLength)

	// Pointers the local document can address stay local.
	local, err := c.Compile(obj{"$ref": "#/$defs/id", "$defs": obj{"id": obj{"type": "integer"}}})
	require.NoError(t, err)
	_, err = local.Validate("x")
	assert.ErrorIs(t, err, schemaerr.KindType)
}

func TestRootDocumentKeepsLocalReferences(t *testing.T) {
	c, err := NewCompiler(WithRootDocument(obj{
		"$defs": obj{"n": obj{"type": "integer"}},
	}))
	require.NoError(t, err)

	shadowed, err := c.Compile(obj{"$defs": obj{"n": obj{"type": "string"}}, "$ref": "#/$defs/n"})
	require.NoError(t, err)
	_, err = shadowed.Validate("x")
	assert.NoError(t, err)
	_, err = shadowed.Validate(1)
	assert.ErrorIs(t, err, schemaerr.KindType)

	tree, err := c.Compile(obj{
		"type": "object",
		"properties": obj{
			"child": obj{"$ref": "#"},
			"n":     obj{"type": "integer"},
		},
	})
	require.NoError(t, err)
	_, err = tree.Validate(obj{"child": obj{"child": obj{"n": 3}}})
	assert.NoError(t, err)
	_, err = tree.Validate(obj{"child": obj{"n": "not-an-int"}})
	require.Error(t, err)
	typeErr := schemaerr.Find(err, schemaerr.KindType)
	require.NotNil(t, typeErr)
	assert.Equal(t, "child.n", typeErr.Path.String())
}

func TestSharedBuiltNodes(t *testing.T) {
	shared := schema.Ref("#/$defs/item")
	names := schema.Array(shared).WithDefs(map[string]*schema.Node{"item": schema.String()})
	ints := schema.Array(shared).WithDefs(map[string]*schema.Node{"item": schema.Int()})

	c, err := NewCompiler()
	require.NoError(t, err)

	sv, err := c.Compile(names)
	require.NoError(t, err)
	iv, err := c.Compile(ints)
	require.NoError(t, err)

	_, err = sv.Validate([]any{"x"})
	assert.NoError(t, err)
	_, err = sv.Validate([]any{1})
	assert.ErrorIs(t, err, schemaerr.KindType)

	_, err = iv.Validate([]any{1})
	assert.NoError(t, err)
	_, err = iv.Validate([]any{"x"})
	assert.ErrorIs(t, err, schemaerr.KindType)

	assert.NotSame(t, names.Array.Items, ints.Array.Items)
	assert.Same(t, ints.Document(), ints.Array.Items.Document())
}

func TestCompileRefWithoutRoot(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)
	_, err = c.CompileRef("#/components/schemas/Pet")
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestRegisteredDocuments(t *testing.T) {
	c, err := NewCompiler(WithDocument("common.json", obj{
		"$defs": obj{"id": obj{"type": "integer", "minimum": 1}},
	}))
	require.NoError(t, err)

	v, err := c.Compile([]byte(`{"properties":{"id":{"$ref":"common.json#/$defs/id"}}}`))
	require.NoError(t, err)

	_, err = v.Validate(obj{"id": 3})
	require.NoError(t, err)
	_, err = v.Validate(obj{"id": 0})
	assert.ErrorIs(t, err, schemaerr.KindMinimum)
}

func TestInvalidRegisteredDocument(t *testing.T) {
	_, err := NewCompiler(WithDocument("bad.json", obj{"type": 5}))
	assert.ErrorIs(t, err, schemaerr.ErrInvalidSchema)
}

func TestLoader(t *testing.T) {
	calls := 0
	loader := ref.LoaderFunc(func(uri string) (any, error) {
		calls++
		if uri == "remote.json" {
			return obj{"type": "string"}, nil
		}
		return nil, fmt.Errorf("unknown document %s", uri)
	})
	c, err := NewCompiler(WithLoader(loader))
	require.NoError(t, err)

	v, err := c.Compile(obj{"items": obj{"$ref": "remote.json"}, "contains": obj{"$ref": "remote.json"}})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = v.Validate([]any{"a", 1})
	assert.ErrorIs(t, err, schemaerr.KindType)

	_, err = c.Compile(obj{"$ref": "missing.json"})
	assert.ErrorIs(t, err, schemaerr.ErrUnresolvable)
}

func TestFunc(t *testing.T) {
	v := compileJSON(t, `{"type":"string"}`)
	validate := v.Func()

	got, err := validate("x")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = validate(1)
	assert.ErrorIs(t, err, schemaerr.KindType)
}

func TestBooleanSchemaInputs(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	accept, err := c.Compile(true)
	require.NoError(t, err)
	_, err = accept.Validate(obj{"x": 1})
	assert.NoError(t, err)

	reject, err := c.Compile(false)
	require.NoError(t, err)
	_, err = reject.Validate(nil)
	assert.ErrorIs(t, err, schemaerr.KindFalseSchema)
}

func TestForget(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	doc, err := schema.NewDocument("", []byte(treeSchema))
	require.NoError(t, err)
	first, err := c.CompileNode(doc, doc.Root)
	require.NoError(t, err)

	other, err := c.Compile([]byte(`{"type":"string"}`))
	require.NoError(t, err)

	c.Forget(doc)

	second, err := c.CompileNode(doc, doc.Root)
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	kept, err := c.CompileNode(other.Document(), other.Node())
	require.NoError(t, err)
	assert.Same(t, other, kept)

	_, err = first.Validate(obj{"children": []any{obj{}}})
	assert.NoError(t, err)
}

func TestForgottenValidatorStaysOutOfCache(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	doc, err := schema.NewDocument("", []byte(treeSchema))
	require.NoError(t, err)
	v, err := c.CompileNode(doc, doc.Root)
	require.NoError(t, err)

	cached := func() int {
		n := 0
		c.cache.Range(func(_, value any) bool {
			if value.(*Validator).doc == doc {
				n++
			}
			return true
		})
		return n
	}
	require.NotZero(t, cached())

	c.Forget(doc)
	require.Zero(t, cached())

	deep := obj{"children": []any{obj{"children": []any{obj{}}}}}
	_, err = v.Validate(deep)
	require.NoError(t, err)
	assert.Zero(t, cached())
}

func TestEmbeddedIDReference(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	v, err := c.Compile(obj{
		"$id":   "http://example.com/root.json",
		"$defs": obj{"a": obj{"$id": "a.json", "type": "integer"}},
		"$ref":  "a.json",
	})
	require.NoError(t, err)

	_, err = v.Validate(7)
	assert.NoError(t, err)
	_, err = v.Validate("7")
	assert.ErrorIs(t, err, schemaerr.KindType)
}

func TestHugeDecodedNumbers(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)
	v, err := c.Compile(obj{"type": "number", "minimum": 0})
	require.NoError(t, err)

	_, err = v.Validate(json.Number("1e400"))
	assert.NoError(t, err)
	_, err = v.Validate(json.Number("-1e400"))
	assert.ErrorIs(t, err, schemaerr.KindMinimum)
}
