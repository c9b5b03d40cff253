package schema

import (
	"sort"
	"strings"
)

// Type is one JSON Schema primitive type.
type Type uint8

const (
	TypeNull Type = 1 << iota
	TypeBoolean
	TypeInteger
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

var typeNames = map[Type]string{
	TypeNull:    "null",
	TypeBoolean: "boolean",
	TypeInteger: "integer",
	TypeNumber:  "number",
	TypeString:  "string",
	TypeArray:   "array",
	TypeObject:  "object",
}

// String returns the keyword spelling of the type, e.g. "integer".
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps a "type" keyword value to a Type.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// TypeSet is a set of Types. The zero value means the "type" keyword is
// absent and any type is allowed.
type TypeSet uint8

// NewTypeSet returns a set holding the given types.
func NewTypeSet(types ...Type) TypeSet {
	var s TypeSet
	for _, t := range types {
		s |= TypeSet(t)
	}
	return s
}

// Has reports whether t is in the set.
func (s TypeSet) Has(t Type) bool {
	return s&TypeSet(t) != 0
}

// Empty reports whether no type was declared.
func (s TypeSet) Empty() bool {
	return s == 0
}

// Add returns the set with t included.
func (s TypeSet) Add(t Type) TypeSet {
	return s | TypeSet(t)
}

// Types returns the members in declaration order
// null, boolean, integer, number, string, array, object.
func (s TypeSet) Types() []Type {
	var out []Type
	for t := TypeNull; t <= TypeObject; t <<= 1 {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the sorted keyword spellings of the members.
func (s TypeSet) Names() []string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	sort.Strings(names)
	return names
}

// String renders the set as "integer|string", or "any" when empty.
func (s TypeSet) String() string {
	if s.Empty() {
		return "any"
	}
	return strings.Join(s.Names(), "|")
}
