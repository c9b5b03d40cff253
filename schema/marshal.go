package schema

import "encoding/json"

// MarshalJSON renders n back into schema JSON. Keyword families are
// emitted as their individual keywords; the legacy "dependencies" keyword
// is emitted as "dependentRequired" and "dependentSchemas".
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Map())
}

// Map returns n as a generic schema value: a bool for literal schemas,
// otherwise a map[string]any keyed by keyword.
func (n *Node) Map() any {
	if n == nil {
		return nil
	}
	if n.Bool != nil {
		return *n.Bool
	}

	m := make(map[string]any)
	setString := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	setNode := func(key string, node *Node) {
		if node != nil {
			m[key] = node.Map()
		}
	}
	setList := func(key string, nodes []*Node) {
		if nodes == nil {
			return
		}
		out := make([]any, len(nodes))
		for i, node := range nodes {
			out[i] = node.Map()
		}
		m[key] = out
	}
	setMap := func(key string, nodes map[string]*Node) {
		if len(nodes) == 0 {
			return
		}
		out := make(map[string]any, len(nodes))
		for name, node := range nodes {
			out[name] = node.Map()
		}
		m[key] = out
	}
	setFloat := func(key string, f *float64) {
		if f != nil {
			m[key] = *f
		}
	}
	setInt := func(key string, i *int) {
		if i != nil {
			m[key] = *i
		}
	}

	setString("$id", n.ID)
	if n.Anchor != "" && n.ID != "#"+n.Anchor {
		m["$anchor"] = n.Anchor
	}
	setString("$ref", n.Ref)
	setString("title", n.Title)
	setString("description", n.Description)
	if n.Default != nil {
		m["default"] = n.Default
	}

	if !n.Types.Empty() {
		types := n.Types
		if n.Nullable {
			m["nullable"] = true
			if types != NewTypeSet(TypeNull) {
				types &^= TypeSet(TypeNull)
			}
		}
		if names := types.Names(); len(names) == 1 {
			m["type"] = names[0]
		} else {
			m["type"] = names
		}
	}
	if n.Enum != nil {
		m["enum"] = n.Enum
	}
	if n.HasConst {
		m["const"] = n.Const
	}
	setString("format", n.Format)

	if k := n.Numeric; k != nil {
		setFloat("multipleOf", k.MultipleOf)
		setFloat("minimum", k.Minimum)
		setFloat("maximum", k.Maximum)
		setFloat("exclusiveMinimum", k.ExclusiveMinimum)
		setFloat("exclusiveMaximum", k.ExclusiveMaximum)
	}
	if k := n.String; k != nil {
		setInt("minLength", k.MinLength)
		setInt("maxLength", k.MaxLength)
		setString("pattern", k.Pattern)
	}
	if k := n.Array; k != nil {
		setNode("items", k.Items)
		setList("items", k.TupleItems)
		setNode("additionalItems", k.AdditionalItems)
		setNode("contains", k.Contains)
		setInt("minItems", k.MinItems)
		setInt("maxItems", k.MaxItems)
		if k.UniqueItems {
			m["uniqueItems"] = true
		}
	}
	if k := n.Object; k != nil {
		setMap("properties", k.Properties)
		setMap("patternProperties", k.PatternProperties)
		setNode("additionalProperties", k.AdditionalProperties)
		setNode("propertyNames", k.PropertyNames)
		if len(k.Required) > 0 {
			m["required"] = k.Required
		}
		setInt("minProperties", k.MinProperties)
		setInt("maxProperties", k.MaxProperties)
		if len(k.DependentRequired) > 0 {
			deps := make(map[string]any, len(k.DependentRequired))
			for name, required := range k.DependentRequired {
				deps[name] = required
			}
			m["dependentRequired"] = deps
		}
		setMap("dependentSchemas", k.DependentSchemas)
	}

	setList("allOf", n.AllOf)
	setList("anyOf", n.AnyOf)
	setList("oneOf", n.OneOf)
	setNode("not", n.Not)
	setNode("if", n.If)
	setNode("then", n.Then)
	setNode("else", n.Else)
	setMap("$defs", n.Defs)
	return m
}
