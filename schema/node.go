package schema

import (
	"maps"
	"slices"
)

// Node is one parsed schema. Keyword families are grouped so consumers can
// tell at a glance which checks a node needs: a nil family means none of
// its keywords were present.
//
// Nodes are immutable once their Document is built and may be shared by any
// number of goroutines.
type Node struct {
	// Pointer locates the node inside its document, e.g. "#/properties/name".
	Pointer string

	// Bool is set for the literal schemas true and false. All other fields
	// are zero when it is set.
	Bool *bool

	ID          string
	Anchor      string
	Title       string
	Description string
	Default     any

	// Types is empty when "type" is absent.
	Types TypeSet

	// Nullable is the OpenAPI "nullable" flag. When true, Types includes
	// TypeNull.
	Nullable bool

	// Enum is nil when "enum" is absent; an empty "enum" yields an empty,
	// non-nil slice.
	Enum []any

	Const    any
	HasConst bool

	Format string
	Ref    string

	Numeric *NumericKeywords
	String  *StringKeywords
	Array   *ArrayKeywords
	Object  *ObjectKeywords

	AllOf []*Node
	AnyOf []*Node
	OneOf []*Node
	Not   *Node
	If    *Node
	Then  *Node
	Else  *Node

	// Defs holds "$defs" and "definitions" entries. When both keywords
	// define the same name, "$defs" wins here; the other remains reachable
	// by pointer.
	Defs map[string]*Node

	doc *Document
}

// NumericKeywords holds multipleOf, minimum, maximum, exclusiveMinimum and
// exclusiveMaximum. Absent keywords are nil.
type NumericKeywords struct {
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
}

// StringKeywords holds minLength, maxLength and pattern.
type StringKeywords struct {
	MinLength *int
	MaxLength *int
	Pattern   string
}

// ArrayKeywords holds the array keywords. Items and TupleItems are
// exclusive: "items" is either one schema for every element or a list of
// positional schemas.
type ArrayKeywords struct {
	Items           *Node
	TupleItems      []*Node
	AdditionalItems *Node
	Contains        *Node
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool
}

// ObjectKeywords holds the object keywords. The legacy "dependencies"
// keyword is split into DependentRequired (array form) and
// DependentSchemas (schema form).
type ObjectKeywords struct {
	Properties           map[string]*Node
	PatternProperties    map[string]*Node
	AdditionalProperties *Node
	PropertyNames        *Node
	Required             []string
	MinProperties        *int
	MaxProperties        *int
	DependentRequired    map[string][]string
	DependentSchemas     map[string]*Node
}

// Document returns the document that owns n, or nil for a node that was
// built in code and never compiled or attached to a document.
func (n *Node) Document() *Document {
	adoptMu.Lock()
	defer adoptMu.Unlock()
	return n.doc
}

// IsTrue reports whether n is the literal schema true. An empty object
// schema is equivalent but not reported.
func (n *Node) IsTrue() bool {
	return n.Bool != nil && *n.Bool
}

// IsFalse reports whether n is the literal schema false.
func (n *Node) IsFalse() bool {
	return n.Bool != nil && !*n.Bool
}

// mapChildren calls fn for every direct subschema in a stable order and
// stores the returned node in its place when it differs.
func (n *Node) mapChildren(fn func(c *Node, tokens ...string) *Node) {
	one := func(slot **Node, tokens ...string) {
		if *slot == nil {
			return
		}
		if r := fn(*slot, tokens...); r != *slot {
			*slot = r
		}
	}
	list := func(keyword string, nodes []*Node) {
		for i := range nodes {
			one(&nodes[i], keyword, itoa(i))
		}
	}
	byName := func(keyword string, nodes map[string]*Node) {
		for _, name := range sortedKeys(nodes) {
			if r := fn(nodes[name], keyword, name); r != nodes[name] {
				nodes[name] = r
			}
		}
	}

	if a := n.Array; a != nil {
		one(&a.Items, "items")
		list("items", a.TupleItems)
		one(&a.AdditionalItems, "additionalItems")
		one(&a.Contains, "contains")
	}
	if o := n.Object; o != nil {
		byName("properties", o.Properties)
		byName("patternProperties", o.PatternProperties)
		one(&o.AdditionalProperties, "additionalProperties")
		one(&o.PropertyNames, "propertyNames")
		byName("dependencies", o.DependentSchemas)
	}
	list("allOf", n.AllOf)
	list("anyOf", n.AnyOf)
	list("oneOf", n.OneOf)
	one(&n.Not, "not")
	one(&n.If, "if")
	one(&n.Then, "then")
	one(&n.Else, "else")
	byName("$defs", n.Defs)
}

// clone returns an unowned copy of n whose subschema containers are its
// own, so replacing a child of the copy leaves n untouched.
func (n *Node) clone() *Node {
	c := *n
	c.doc = nil
	c.Pointer = ""
	if n.Array != nil {
		a := *n.Array
		a.TupleItems = slices.Clone(a.TupleItems)
		c.Array = &a
	}
	if n.Object != nil {
		o := *n.Object
		o.Properties = maps.Clone(o.Properties)
		o.PatternProperties = maps.Clone(o.PatternProperties)
		o.DependentSchemas = maps.Clone(o.DependentSchemas)
		c.Object = &o
	}
	c.AllOf = slices.Clone(n.AllOf)
	c.AnyOf = slices.Clone(n.AnyOf)
	c.OneOf = slices.Clone(n.OneOf)
	c.Defs = maps.Clone(n.Defs)
	return &c
}
