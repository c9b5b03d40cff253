package schema

// Any creates a schema that accepts any value.
// This is useful for dynamic or unstructured data.
func Any() *Node {
	return &Node{}
}

// True creates the literal schema true, which accepts everything.
func True() *Node {
	b := true
	return &Node{Bool: &b}
}

// False creates the literal schema false, which rejects everything.
func False() *Node {
	b := false
	return &Node{Bool: &b}
}

// String creates a schema for a string type.
func String() *Node {
	return &Node{Types: NewTypeSet(TypeString)}
}

// StringWithDesc creates a schema for a string type with a description.
func StringWithDesc(desc string) *Node {
	return &Node{
		Types:       NewTypeSet(TypeString),
		Description: desc,
	}
}

// Int creates a schema for an integer type.
func Int() *Node {
	return &Node{Types: NewTypeSet(TypeInteger)}
}

// Number creates a schema for a number type.
func Number() *Node {
	return &Node{Types: NewTypeSet(TypeNumber)}
}

// Bool creates a schema for a boolean type.
func Bool() *Node {
	return &Node{Types: NewTypeSet(TypeBoolean)}
}

// Null creates a schema for the null type.
func Null() *Node {
	return &Node{Types: NewTypeSet(TypeNull)}
}

// Array creates a schema for an array type with the specified item schema.
func Array(items *Node) *Node {
	return &Node{
		Types: NewTypeSet(TypeArray),
		Array: &ArrayKeywords{Items: items},
	}
}

// Object creates a schema for an object type with the specified properties and required fields.
func Object(properties map[string]*Node, required ...string) *Node {
	return &Node{
		Types: NewTypeSet(TypeObject),
		Object: &ObjectKeywords{
			Properties: properties,
			Required:   required,
		},
	}
}

// Enum creates a schema with enumerated values.
func Enum(values ...any) *Node {
	if values == nil {
		values = []any{}
	}
	return &Node{Enum: values}
}

// Const creates a schema that accepts exactly one value.
func Const(value any) *Node {
	return &Node{Const: value, HasConst: true}
}

// Ref creates a schema that delegates to the schema at ref, e.g.
// "#/$defs/node".
func Ref(ref string) *Node {
	return &Node{Ref: ref}
}

// AllOf creates a schema that requires every subschema to match.
func AllOf(schemas ...*Node) *Node {
	return &Node{AllOf: schemas}
}

// AnyOf creates a schema that requires at least one subschema to match.
func AnyOf(schemas ...*Node) *Node {
	return &Node{AnyOf: schemas}
}

// OneOf creates a schema that requires exactly one subschema to match.
func OneOf(schemas ...*Node) *Node {
	return &Node{OneOf: schemas}
}

// Not creates a schema that rejects whatever s accepts.
func Not(s *Node) *Node {
	return &Node{Not: s}
}

// WithDefs returns a copy of n with the given definitions attached, for
// use as "#/$defs/<name>" reference targets.
// This method is immutable - it does not modify the receiver.
func (n *Node) WithDefs(defs map[string]*Node) *Node {
	result := *n
	result.doc = nil
	result.Defs = make(map[string]*Node, len(n.Defs)+len(defs))
	for name, def := range n.Defs {
		result.Defs[name] = def
	}
	for name, def := range defs {
		result.Defs[name] = def
	}
	return &result
}

// WithFormat returns a copy of n with the "format" keyword set.
func (n *Node) WithFormat(format string) *Node {
	result := *n
	result.doc = nil
	result.Format = format
	return &result
}

// WithDescription returns a copy of n with a description.
func (n *Node) WithDescription(desc string) *Node {
	result := *n
	result.doc = nil
	result.Description = desc
	return &result
}
