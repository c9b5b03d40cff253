package validator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/jsonschema/schemaerr"
)

type obj = map[string]any

type keywordCase struct {
	name     string
	schema   string
	value    any
	wantKind schemaerr.Kind // empty when the value is valid
}

func compileJSON(t *testing.T, schemaJSON string, opts ...Option) *Validator {
	t.Helper()
	c, err := NewCompiler(opts...)
	require.NoError(t, err)
	v, err := c.Compile([]byte(schemaJSON))
	require.NoError(t, err)
	return v
}

func runKeywordCases(t *testing.T, tests []keywordCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compileJSON(t, tt.schema)
			got, err := v.Validate(tt.value)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.value, got)
				return
			}
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestValidateTypes(t *testing.T) {
	runKeywordCases(t, []keywordCase{
		{"integer", `{"type":"integer"}`, 12, ""},
		{"integral float is an integer", `{"type":"integer"}`, 1.0, ""},
		{"json number integer", `{"type":"integer"}`, json.Number("3"), ""},
		{"fraction is not an integer", `{"type":"integer"}`, 1.5, schemaerr.KindType},
		{"string is not an integer", `{"type":"integer"}`, "12", schemaerr.KindType},
		{"integer is a number", `{"type":"number"}`, 7, ""},
		{"boolean is not a number", `{"type":"number"}`, true, schemaerr.KindType},
		{"null in union", `{"type":["string","null"]}`, nil, ""},
		{"boolean outside union", `{"type":["string","null"]}`, true, schemaerr.KindType},
		{"nullable", `{"type":"string","nullable":true}`, nil, ""},
		{"array", `{"type":"array"}`, []int{1}, ""},
		{"object", `{"type":"object"}`, obj{}, ""},
		{"object is not an array", `{"type":"array"}`, obj{}, schemaerr.KindType},
		{"untyped accepts anything", `{}`, []any{obj{"a": nil}}, ""},
	})
}

func TestValidateStringConstraints(t *testing.T) {
	runKeywordCases(t, []keywordCase{
		{"valid string with min/max length", `{"type":"string","minLength":3,"maxLength":10}`, "hello", ""},
		{"string too short", `{"type":"string","minLength":5}`, "hi", schemaerr.KindMinimumLength},
		{"string too long", `{"type":"string","maxLength":5}`, "hello world", schemaerr.KindMaximumLength},
		{"length counts code points", `{"type":"string","maxLength":5}`, "héllo", ""},
		{"valid pattern match", `{"type":"string","pattern":"^[a-z]+$"}`, "hello", ""},
		{"invalid pattern match", `{"type":"string","pattern":"^[a-z]+$"}`, "Hello123", schemaerr.KindPattern},
		{"pattern is unanchored", `{"pattern":"b"}`, "abc", ""},
		{"string keywords ignore numbers without a type", `{"minLength":2}`, 5, ""},
	})
}

func TestValidateNumericConstraints(t *testing.T) {
	runKeywordCases(t, []keywordCase{
		{"valid integer with min/max", `{"type":"integer","minimum":0,"maximum":100}`, 50, ""},
		{"integer below minimum", `{"type":"integer","minimum":0}`, -10, schemaerr.KindMinimum},
		{"integer above maximum", `{"type":"integer","maximum":100}`, 150, schemaerr.KindMaximum},
		{"minimum is inclusive", `{"minimum":5}`, 5, ""},
		{"exclusive minimum", `{"exclusiveMinimum":0}`, 0, schemaerr.KindExclusiveMinimum},
		{"exclusive maximum", `{"exclusiveMaximum":10}`, 10, schemaerr.KindExclusiveMaximum},
		{"draft-4 exclusive minimum", `{"minimum":5,"exclusiveMinimum":true}`, 5, schemaerr.KindExclusiveMinimum},
		{"multiple of integer", `{"multipleOf":3}`, 9, ""},
		{"not a multiple", `{"multipleOf":3}`, 10, schemaerr.KindMultipleOf},
		{"float multiple within tolerance", `{"multipleOf":0.01}`, 0.07, ""},
		{"float not a multiple", `{"multipleOf":0.1}`, 0.35, schemaerr.KindMultipleOf},
		{"large integers are exact", `{"multipleOf":3}`, json.Number("9007199254740993"), ""},
		{"numeric keywords ignore strings without a type", `{"minimum":5}`, "x", ""},
	})
}

func TestValidateEnumAndConst(t *testing.T) {
	runKeywordCases(t, []keywordCase{
		{"enum member", `{"enum":["a",1,null]}`, "a", ""},
		{"enum compares numbers by value", `{"enum":["a",1,null]}`, 1.0, ""},
		{"enum null", `{"enum":["a",1,null]}`, nil, ""},
		{"enum miss", `{"enum":["a",1,null]}`, "b", schemaerr.KindEnum},
		{"const deep equality", `{"const":{"a":[1,2]}}`, obj{"a": []any{1.0, 2}}, ""},
		{"const order matters in arrays", `{"const":{"a":[1,2]}}`, obj{"a": []any{2, 1}}, schemaerr.KindEquality},
		{"const mismatch is a comparison", `{"const":3}`, 4, schemaerr.KindComparison},
	})
}

func TestValidateArrayConstraints(t *testing.T) {
	runKeywordCases(t, []keywordCase{
		{"too few items", `{"minItems":2}`, []any{1}, schemaerr.KindMinimumItems},
		{"too many items", `{"maxItems":1}`, []any{1, 2}, schemaerr.KindMaximumItems},
		{"unique scalars", `{"uniqueItems":true}`, []any{1, 2}, ""},
		{"duplicate scalars", `{"uniqueItems":true}`, []any{1, 1}, schemaerr.KindUniqueItems},
		{"duplicate numbers across representations", `{"uniqueItems":true}`, []any{1, 1.0}, schemaerr.KindUniqueItems},
		{"duplicate objects", `{"uniqueItems":true}`, []any{obj{"a": 1}, obj{"a": 1}}, schemaerr.KindUniqueItems},
		{"distinct objects", `{"uniqueItems":true}`, []any{obj{"a": 1}, obj{"a": 2}}, ""},
		{"item schema", `{"items":{"type":"integer"}}`, []any{1, 2}, ""},
		{"invalid item", `{"items":{"type":"integer"}}`, []any{1, "x"}, schemaerr.KindType},
		{"tuple", `{"items":[{"type":"string"},{"type":"integer"}],"additionalItems":false}`, []any{"a", 1}, ""},
		{"short tuple", `{"items":[{"type":"string"},{"type":"integer"}],"additionalItems":false}`, []any{"a"}, ""},
		{"closed tuple", `{"items":[{"type":"string"},{"type":"integer"}],"additionalItems":false}`, []any{"a", 1, true}, schemaerr.KindAdditionalItems},
		{"additional items schema", `{"items":[{"type":"string"}],"additionalItems":{"type":"boolean"}}`, []any{"a", true, "x"}, schemaerr.KindItems},
		{"contains match", `{"contains":{"type":"integer"}}`, []any{"a", 2}, ""},
		{"contains miss", `{"contains":{"type":"integer"}}`, []any{"a", "b"}, schemaerr.KindContains},
	})
}

func TestValidateObjectConstraints(t *testing.T) {
	runKeywordCases(t, []keywordCase{
		{"required present", `{"required":["name"]}`, obj{"name": "x"}, ""},
		{"required missing", `{"required":["name"]}`, obj{}, schemaerr.KindRequiredProperty},
		{"too few properties", `{"minProperties":1}`, obj{}, schemaerr.KindMinimumProperties},
		{"too many properties", `{"maxProperties":1}`, obj{"a": 1, "b": 2}, schemaerr.KindMaximumProperties},
		{"closed object", `{"properties":{"a":{}},"additionalProperties":false}`, obj{"a": 1, "b": 2}, schemaerr.KindAdditionalProperties},
		{"closed object declared keys", `{"properties":{"a":{}},"additionalProperties":false}`, obj{"a": 1}, ""},
		{"pattern properties close the gap", `{"patternProperties":{"^x-":{"type":"string"}},"additionalProperties":false}`, obj{"x-a": "s"}, ""},
		{"pattern property value", `{"patternProperties":{"^x-":{"type":"string"}}}`, obj{"x-a": 1}, schemaerr.KindPropertyValue},
		{"additional properties schema", `{"additionalProperties":{"type":"integer"}}`, obj{"z": "s"}, schemaerr.KindPropertyValue},
		{"property names", `{"propertyNames":{"pattern":"^[a-z]+$"}}`, obj{"AB": 1}, schemaerr.KindPropertyName},
		{"dependent required satisfied", `{"dependentRequired":{"a":["b"]}}`, obj{"a": 1, "b": 2}, ""},
		{"dependent required missing", `{"dependentRequired":{"a":["b"]}}`, obj{"a": 1}, schemaerr.KindDependency},
		{"dependent required inactive", `{"dependentRequired":{"a":["b"]}}`, obj{"b": 1}, ""},
		{"legacy dependencies array", `{"dependencies":{"a":["b"]}}`, obj{"a": 1}, schemaerr.KindDependency},
		{"legacy dependencies schema", `{"dependencies":{"a":{"required":["c"]}}}`, obj{"a": 1}, schemaerr.KindRequiredProperty},
		{"false property schema", `{"properties":{"x":false}}`, obj{"x": 1}, schemaerr.KindFalseSchema},
		{"object keywords ignore arrays without a type", `{"required":["a"]}`, []any{}, ""},
	})
}

func TestValidateCombinators(t *testing.T) {
	ifThenElse := `{
		"if": {"properties": {"kind": {"const": "a"}}},
		"then": {"required": ["a"]},
		"else": {"required": ["b"]}
	}`
	runKeywordCases(t, []keywordCase{
		{"allOf passes the failure through", `{"allOf":[{"type":"integer"},{"minimum":3}]}`, 2, schemaerr.KindMinimum},
		{"allOf", `{"allOf":[{"type":"integer"},{"minimum":3}]}`, 3, ""},
		{"anyOf", `{"anyOf":[{"type":"string"},{"type":"integer"}]}`, 1, ""},
		{"anyOf none", `{"anyOf":[{"type":"string"},{"type":"integer"}]}`, true, schemaerr.KindAnyOf},
		{"oneOf exactly one", `{"oneOf":[{"type":"integer"},{"minimum":0}]}`, -1, ""},
		{"oneOf both", `{"oneOf":[{"type":"integer"},{"minimum":0}]}`, 5, schemaerr.KindOneOf},
		{"oneOf none", `{"oneOf":[{"type":"integer"},{"type":"string"}]}`, 1.5, schemaerr.KindOneOf},
		{"not", `{"not":{"type":"string"}}`, 1, ""},
		{"not matched", `{"not":{"type":"string"}}`, "x", schemaerr.KindNot},
		{"then branch", ifThenElse, obj{"kind": "a", "a": 1}, ""},
		{"then branch fails", ifThenElse, obj{"kind": "a"}, schemaerr.KindRequiredProperty},
		{"else branch", ifThenElse, obj{"kind": "z", "b": 1}, ""},
		{"else branch fails", ifThenElse, obj{"kind": "z"}, schemaerr.KindRequiredProperty},
		{"false schema", `false`, "anything", schemaerr.KindFalseSchema},
		{"true schema", `true`, obj{"anything": []any{}}, ""},
	})
}

func TestValidateCombinatorCauses(t *testing.T) {
	v := compileJSON(t, `{"anyOf":[{"type":"string"},{"type":"integer","minimum":10}]}`)

	_, err := v.Validate(3)
	require.Error(t, err)

	verr, ok := schemaerr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, schemaerr.KindAnyOf, verr.Kind)
	require.Len(t, verr.Causes, 2)
	assert.Equal(t, schemaerr.KindType, verr.Causes[0].Kind)
	assert.Equal(t, schemaerr.KindMinimum, verr.Causes[1].Kind)
	assert.True(t, errors.Is(err, schemaerr.KindCombination))
}
