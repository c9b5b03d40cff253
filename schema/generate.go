package schema

import (
	"reflect"
	"strings"
	"time"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// FromType generates a schema from a Go type using reflection.
// The schema describes the structure that the type represents, not the values.
//
// Supported types:
//   - struct: generates an object schema with properties from exported fields
//   - slice/array: generates an array schema
//   - map: generates an object schema whose additionalProperties describe the values
//   - string, int*, uint*, float*, bool: generates primitive schemas
//   - time.Time: generates string schema with date-time format
//   - []byte: generates string schema with byte format
//   - interface{}/any: generates empty schema (allows any)
//
// Struct tags:
//   - `json:"name"`: uses the JSON tag name for the property
//   - `json:"-"`: skips the field
//   - `json:"name,omitempty"`: field is optional (not in required list)
//   - `description:"..."`: sets the property description
//
// Embedded structs without a JSON name are flattened, as encoding/json does.
// Recursive types are emitted once under "$defs" and referenced with "$ref".
func FromType(t any) *Node {
	if t == nil {
		return Any()
	}

	g := &generator{
		visiting:  make(map[reflect.Type]bool),
		recursive: make(map[reflect.Type]bool),
		defs:      make(map[string]*Node),
	}
	root := g.fromReflectType(reflect.TypeOf(t))
	if len(g.defs) > 0 {
		root = root.WithDefs(g.defs)
	}
	return root
}

type generator struct {
	visiting  map[reflect.Type]bool
	recursive map[reflect.Type]bool
	defs      map[string]*Node
}

func defName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return strings.NewReplacer("*", "", ".", "_", " ", "").Replace(t.String())
}

// fromReflectType generates a schema from a reflect.Type
func (g *generator) fromReflectType(t reflect.Type) *Node {
	// Handle pointer types
	if t.Kind() == reflect.Ptr {
		return g.fromReflectType(t.Elem())
	}

	// Special handling for time.Time
	if t == timeType {
		return String().WithFormat("date-time")
	}
	if t == bytesType {
		return String().WithFormat("byte")
	}

	switch t.Kind() {
	case reflect.Struct:
		return g.fromStruct(t)
	case reflect.Slice, reflect.Array:
		return Array(g.fromReflectType(t.Elem()))
	case reflect.Map:
		obj := &Node{Types: NewTypeSet(TypeObject)}
		if t.Elem().Kind() != reflect.Interface {
			obj.Object = &ObjectKeywords{AdditionalProperties: g.fromReflectType(t.Elem())}
		}
		return obj
	case reflect.String:
		return String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int()
	case reflect.Float32, reflect.Float64:
		return Number()
	case reflect.Bool:
		return Bool()
	default:
		// interface{}, any and unknown kinds allow any value
		return Any()
	}
}

// fromStruct generates a schema for a struct type, switching to a $ref when
// the type is already being generated further up the stack.
func (g *generator) fromStruct(t reflect.Type) *Node {
	ref := "#/$defs/" + defName(t)
	if g.visiting[t] {
		g.recursive[t] = true
		return Ref(ref)
	}

	g.visiting[t] = true
	properties := make(map[string]*Node)
	var required []string
	g.collectFields(t, properties, &required)
	delete(g.visiting, t)

	node := Object(properties, required...)
	if g.recursive[t] {
		g.defs[defName(t)] = node
		return Ref(ref)
	}
	return node
}

func (g *generator) collectFields(t reflect.Type, properties map[string]*Node, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Parse json tag
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue // Skip fields with json:"-"
		}
		parts := strings.Split(jsonTag, ",")

		// Flatten embedded structs the way encoding/json does
		if field.Anonymous && parts[0] == "" {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				g.collectFields(ft, properties, required)
				continue
			}
		}

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		// Get field name from json tag or field name
		fieldName := field.Name
		if parts[0] != "" {
			fieldName = parts[0]
		}
		isOmitempty := false
		for _, part := range parts[1:] {
			if part == "omitempty" || part == "omitzero" {
				isOmitempty = true
				break
			}
		}

		fieldSchema := g.fromReflectType(field.Type)

		// Add description from description tag if present
		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema = fieldSchema.WithDescription(desc)
		}

		properties[fieldName] = fieldSchema

		// Non-omitempty fields are required
		if !isOmitempty {
			*required = append(*required, fieldName)
		}
	}
}
