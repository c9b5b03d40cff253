package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// Parse parses a standalone schema into a new Document and returns its
// root node. See NewDocument for the accepted inputs.
func Parse(raw any) (*Node, error) {
	doc, err := NewDocument("", raw)
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}

// parseNode parses raw as the schema located at pointer. It performs no
// I/O and resolves no references.
func parseNode(raw any, pointer string) (*Node, error) {
	switch v := raw.(type) {
	case bool:
		return &Node{Pointer: "#" + pointer, Bool: &v}, nil
	case *Node:
		return v, nil
	}
	m, ok := asMap(raw)
	if !ok {
		return nil, schemaerr.NewSchemaError("#"+pointer, "",
			fmt.Sprintf("schema must be an object or a boolean, got %s", describe(raw)))
	}

	p := &parser{m: m, ptr: pointer, n: &Node{Pointer: "#" + pointer}}
	steps := []func() error{
		p.meta,
		p.types,
		p.values,
		p.numericFamily,
		p.stringFamily,
		p.arrayFamily,
		p.objectFamily,
		p.combinators,
		p.defs,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return p.n, nil
}

type parser struct {
	m   map[string]any
	ptr string
	n   *Node
}

func (p *parser) fail(keyword, format string, args ...any) error {
	return schemaerr.NewSchemaError("#"+p.ptr, keyword, fmt.Sprintf(format, args...))
}

func (p *parser) has(keyword string) bool {
	_, ok := p.m[keyword]
	return ok
}

func (p *parser) str(keyword string) (string, error) {
	raw, ok := p.m[keyword]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", p.fail(keyword, "must be a string, got %s", describe(raw))
	}
	return s, nil
}

func (p *parser) number(keyword string) (*float64, error) {
	raw, ok := p.m[keyword]
	if !ok {
		return nil, nil
	}
	f, ok := jsonvalue.Float(raw)
	if !ok {
		return nil, p.fail(keyword, "must be a number, got %s", describe(raw))
	}
	return &f, nil
}

func (p *parser) count(keyword string) (*int, error) {
	raw, ok := p.m[keyword]
	if !ok {
		return nil, nil
	}
	i, ok := jsonvalue.Int64(raw)
	if !ok || i < 0 {
		return nil, p.fail(keyword, "must be a non-negative integer, got %v", raw)
	}
	n := int(i)
	return &n, nil
}

func (p *parser) sub(tokens ...string) (*Node, error) {
	raw := p.m[tokens[0]]
	for _, t := range tokens[1:] {
		m, _ := asMap(raw)
		raw = m[t]
	}
	return parseNode(raw, p.ptr+JoinPointer(tokens...))
}

func (p *parser) optionalSub(keyword string) (*Node, error) {
	if !p.has(keyword) {
		return nil, nil
	}
	return p.sub(keyword)
}

func (p *parser) subList(keyword string, allowEmpty bool) ([]*Node, error) {
	raw, ok := p.m[keyword]
	if !ok {
		return nil, nil
	}
	items, ok := asSlice(raw)
	if !ok {
		return nil, p.fail(keyword, "must be an array of schemas, got %s", describe(raw))
	}
	if len(items) == 0 && !allowEmpty {
		return nil, p.fail(keyword, "must not be empty")
	}
	nodes := make([]*Node, len(items))
	for i, item := range items {
		node, err := parseNode(item, p.ptr+JoinPointer(keyword, itoa(i)))
		if err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return nodes, nil
}

func (p *parser) subMap(keyword string) (map[string]*Node, error) {
	raw, ok := p.m[keyword]
	if !ok {
		return nil, nil
	}
	m, ok := asMap(raw)
	if !ok {
		return nil, p.fail(keyword, "must be an object, got %s", describe(raw))
	}
	nodes := make(map[string]*Node, len(m))
	for name, item := range m {
		node, err := parseNode(item, p.ptr+JoinPointer(keyword, name))
		if err != nil {
			return nil, err
		}
		nodes[name] = node
	}
	return nodes, nil
}

func (p *parser) stringList(keyword string, raw any) ([]string, error) {
	items, ok := asSlice(raw)
	if !ok {
		return nil, p.fail(keyword, "must be an array of strings, got %s", describe(raw))
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, p.fail(keyword, "element %d must be a string, got %s", i, describe(item))
		}
		out[i] = s
	}
	return out, nil
}

func (p *parser) meta() error {
	var err error
	n := p.n
	if n.ID, err = p.str("$id"); err != nil {
		return err
	}
	if n.Anchor, err = p.str("$anchor"); err != nil {
		return err
	}
	if n.Anchor == "" && strings.HasPrefix(n.ID, "#") {
		n.Anchor = n.ID[1:]
	}
	if n.Ref, err = p.str("$ref"); err != nil {
		return err
	}
	if n.Title, err = p.str("title"); err != nil {
		return err
	}
	if n.Description, err = p.str("description"); err != nil {
		return err
	}
	n.Default = p.m["default"]
	return nil
}

func (p *parser) types() error {
	raw, ok := p.m["type"]
	if ok {
		var names []string
		if s, isString := raw.(string); isString {
			names = []string{s}
		} else {
			list, err := p.stringList("type", raw)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return p.fail("type", "must not be an empty array")
			}
			names = list
		}
		for _, name := range names {
			t, known := ParseType(name)
			if !known {
				return p.fail("type", "unknown type %q", name)
			}
			p.n.Types = p.n.Types.Add(t)
		}
	}

	if raw, ok := p.m["nullable"]; ok {
		b, isBool := raw.(bool)
		if !isBool {
			return p.fail("nullable", "must be a boolean, got %s", describe(raw))
		}
		p.n.Nullable = b
		if b && !p.n.Types.Empty() {
			p.n.Types = p.n.Types.Add(TypeNull)
		}
	}
	return nil
}

func (p *parser) values() error {
	if raw, ok := p.m["enum"]; ok {
		items, isSlice := asSlice(raw)
		if !isSlice {
			return p.fail("enum", "must be an array, got %s", describe(raw))
		}
		p.n.Enum = append(make([]any, 0, len(items)), items...)
	}
	if raw, ok := p.m["const"]; ok {
		p.n.Const = raw
		p.n.HasConst = true
	}
	var err error
	p.n.Format, err = p.str("format")
	return err
}

func (p *parser) numericFamily() error {
	var (
		k   NumericKeywords
		err error
	)
	if k.MultipleOf, err = p.number("multipleOf"); err != nil {
		return err
	}
	if k.MultipleOf != nil && *k.MultipleOf <= 0 {
		return p.fail("multipleOf", "must be greater than 0, got %v", *k.MultipleOf)
	}
	if k.Minimum, err = p.number("minimum"); err != nil {
		return err
	}
	if k.Maximum, err = p.number("maximum"); err != nil {
		return err
	}
	if k.ExclusiveMinimum, k.Minimum, err = p.exclusive("exclusiveMinimum", k.Minimum); err != nil {
		return err
	}
	if k.ExclusiveMaximum, k.Maximum, err = p.exclusive("exclusiveMaximum", k.Maximum); err != nil {
		return err
	}
	if k != (NumericKeywords{}) {
		p.n.Numeric = &k
	}
	return nil
}

// exclusive reads exclusiveMinimum or exclusiveMaximum. The draft-4 boolean
// form turns the inclusive bound into an exclusive one.
func (p *parser) exclusive(keyword string, inclusive *float64) (*float64, *float64, error) {
	raw, ok := p.m[keyword]
	if !ok {
		return nil, inclusive, nil
	}
	if b, isBool := raw.(bool); isBool {
		if b && inclusive != nil {
			return inclusive, nil, nil
		}
		return nil, inclusive, nil
	}
	f, err := p.number(keyword)
	return f, inclusive, err
}

func (p *parser) stringFamily() error {
	var (
		k   StringKeywords
		err error
	)
	if k.MinLength, err = p.count("minLength"); err != nil {
		return err
	}
	if k.MaxLength, err = p.count("maxLength"); err != nil {
		return err
	}
	if k.Pattern, err = p.str("pattern"); err != nil {
		return err
	}
	if k != (StringKeywords{}) || p.has("pattern") {
		p.n.String = &k
	}
	return nil
}

func (p *parser) arrayFamily() error {
	if !p.has("items") && !p.has("additionalItems") && !p.has("contains") &&
		!p.has("minItems") && !p.has("maxItems") && !p.has("uniqueItems") {
		return nil
	}
	var (
		k   ArrayKeywords
		err error
	)
	if raw, ok := p.m["items"]; ok {
		if _, isList := asSlice(raw); isList {
			k.TupleItems, err = p.subList("items", true)
		} else {
			k.Items, err = p.sub("items")
		}
		if err != nil {
			return err
		}
	}
	if k.AdditionalItems, err = p.optionalSub("additionalItems"); err != nil {
		return err
	}
	if k.Contains, err = p.optionalSub("contains"); err != nil {
		return err
	}
	if k.MinItems, err = p.count("minItems"); err != nil {
		return err
	}
	if k.MaxItems, err = p.count("maxItems"); err != nil {
		return err
	}
	if raw, ok := p.m["uniqueItems"]; ok {
		b, isBool := raw.(bool)
		if !isBool {
			return p.fail("uniqueItems", "must be a boolean, got %s", describe(raw))
		}
		k.UniqueItems = b
	}
	p.n.Array = &k
	return nil
}

var objectKeywords = []string{
	"properties", "patternProperties", "additionalProperties", "propertyNames",
	"required", "minProperties", "maxProperties",
	"dependentRequired", "dependentSchemas", "dependencies",
}

func (p *parser) objectFamily() error {
	present := false
	for _, kw := range objectKeywords {
		if p.has(kw) {
			present = true
			break
		}
	}
	if !present {
		return nil
	}

	var (
		k   ObjectKeywords
		err error
	)
	if k.Properties, err = p.subMap("properties"); err != nil {
		return err
	}
	if k.PatternProperties, err = p.subMap("patternProperties"); err != nil {
		return err
	}
	if k.AdditionalProperties, err = p.optionalSub("additionalProperties"); err != nil {
		return err
	}
	if k.PropertyNames, err = p.optionalSub("propertyNames"); err != nil {
		return err
	}
	if raw, ok := p.m["required"]; ok {
		if k.Required, err = p.stringList("required", raw); err != nil {
			return err
		}
	}
	if k.MinProperties, err = p.count("minProperties"); err != nil {
		return err
	}
	if k.MaxProperties, err = p.count("maxProperties"); err != nil {
		return err
	}
	if err = p.dependencies(&k); err != nil {
		return err
	}
	p.n.Object = &k
	return nil
}

func (p *parser) dependencies(k *ObjectKeywords) error {
	addRequired := func(keyword, name string, raw any) error {
		list, err := p.stringList(keyword, raw)
		if err != nil {
			return err
		}
		if k.DependentRequired == nil {
			k.DependentRequired = make(map[string][]string)
		}
		k.DependentRequired[name] = list
		return nil
	}
	addSchema := func(keyword, name string) error {
		node, err := p.sub(keyword, name)
		if err != nil {
			return err
		}
		if k.DependentSchemas == nil {
			k.DependentSchemas = make(map[string]*Node)
		}
		k.DependentSchemas[name] = node
		return nil
	}

	for _, keyword := range []string{"dependencies", "dependentRequired", "dependentSchemas"} {
		raw, ok := p.m[keyword]
		if !ok {
			continue
		}
		m, isMap := asMap(raw)
		if !isMap {
			return p.fail(keyword, "must be an object, got %s", describe(raw))
		}
		for _, name := range sortedKeys(m) {
			value := m[name]
			_, isList := asSlice(value)
			var err error
			switch {
			case keyword == "dependentRequired" || (keyword == "dependencies" && isList):
				err = addRequired(keyword, name, value)
			default:
				err = addSchema(keyword, name)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *parser) combinators() error {
	var err error
	n := p.n
	if n.AllOf, err = p.subList("allOf", false); err != nil {
		return err
	}
	if n.AnyOf, err = p.subList("anyOf", false); err != nil {
		return err
	}
	if n.OneOf, err = p.subList("oneOf", false); err != nil {
		return err
	}
	if n.Not, err = p.optionalSub("not"); err != nil {
		return err
	}
	if n.If, err = p.optionalSub("if"); err != nil {
		return err
	}
	if n.Then, err = p.optionalSub("then"); err != nil {
		return err
	}
	n.Else, err = p.optionalSub("else")
	return err
}

func (p *parser) defs() error {
	for _, keyword := range []string{"definitions", "$defs"} {
		nodes, err := p.subMap(keyword)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			continue
		}
		if p.n.Defs == nil {
			p.n.Defs = make(map[string]*Node, len(nodes))
		}
		for name, node := range nodes {
			p.n.Defs[name] = node
		}
	}
	return nil
}

// asMap accepts the object shapes produced by encoding/json and yaml.v3.
func asMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func asSlice(raw any) ([]any, bool) {
	switch s := raw.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case nil, string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func describe(raw any) string {
	if raw == nil {
		return "null"
	}
	if k := jsonvalue.KindOf(raw); k != jsonvalue.Invalid {
		return k.String()
	}
	if _, ok := asMap(raw); ok {
		return "object"
	}
	if _, ok := asSlice(raw); ok {
		return "array"
	}
	return fmt.Sprintf("%T", raw)
}
