// Package schema provides the parsed representation of JSON Schema (draft 7)
// documents.
//
// A schema document is parsed once into a tree of *Node values owned by a
// *Document. Each node groups its keywords into families (numeric, string,
// array, object, combinators), so validators can be built without
// re-inspecting raw maps. Parsing performs no I/O and resolves no
// references; see the ref package for resolution.
//
// # Parsing
//
// Parsing decoded JSON or YAML:
//
//	root, err := schema.Parse(map[string]any{
//		"type":     "object",
//		"required": []any{"name"},
//		"properties": map[string]any{
//			"name": map[string]any{"type": "string", "minLength": 2},
//		},
//	})
//
// Malformed schemas fail with *schemaerr.SchemaError, which carries the JSON
// pointer of the offending location:
//
//	_, err := schema.Parse(map[string]any{"minLength": -1})
//	// invalid schema at # (minLength): must be a non-negative integer, got -1
//
// # Documents
//
// A Document indexes every node by JSON pointer and every "$anchor" by name.
// Locations outside the schema tree are parsed lazily on first lookup:
//
//	doc, err := schema.NewDocument("openapi.yaml", api)
//	pet, err := doc.Lookup("/components/schemas/Pet")
//	raw, err := doc.Query("/info/title")
//
// # Building Schemas
//
// Creating schemas in code:
//
//	userSchema := schema.Object(map[string]*schema.Node{
//		"name":  schema.StringWithDesc("User's full name"),
//		"age":   schema.Int(),
//		"email": schema.String().WithFormat("email"),
//	}, "name", "email") // name and email are required
//
//	numbersSchema := schema.Array(schema.Number())
//	statusSchema := schema.Enum("pending", "active", "completed")
//
// Constraints are set on the keyword families:
//
//	minLen := 3
//	constrained := schema.String()
//	constrained.String = &schema.StringKeywords{MinLength: &minLen, Pattern: "^[a-z]+$"}
//
// # Generating Schemas
//
// FromType derives a schema from a Go type using its JSON struct tags:
//
//	type User struct {
//		Name  string `json:"name" description:"User's full name"`
//		Email string `json:"email,omitempty"`
//	}
//	userSchema := schema.FromType(User{})
package schema
