// Package jsonschema validates decoded JSON values against draft-7 JSON
// Schemas, including the OpenAPI 3 dialect (nullable, components
// references).
//
// # Quick start
//
// Validate compiles a schema, caches the compilation, and checks a value:
//
//	doc := map[string]any{"name": "Bob", "age": "12"}
//	_, err := jsonschema.Validate(doc, map[string]any{
//		"type": "object",
//		"properties": map[string]any{
//			"name": map[string]any{"type": "string"},
//			"age":  map[string]any{"type": "integer"},
//		},
//	})
//	if e := schemaerr.Find(err, schemaerr.KindType); e != nil {
//		fmt.Println(e.Path) // age
//	}
//
// Schemas may be given as *schema.Node (built in code or with
// schema.FromType), *schema.Document, bool, decoded JSON or YAML objects,
// or JSON text. Values may come from encoding/json, from yaml.v3, or be
// plain Go slices, maps and structs. On success the value is returned
// unchanged.
//
// # Reusing validators
//
// Compile returns a *validator.Validator that can be called repeatedly and
// from several goroutines:
//
//	v, err := jsonschema.Compile(schemaJSON)
//	if err != nil {
//		return err
//	}
//	for _, doc := range docs {
//		if _, err := v.Validate(doc); err != nil {
//			log.Print(err)
//		}
//	}
//
// An Engine created with New holds its own cache and compiler options, such
// as a root OpenAPI document or extra format checkers.
//
// # Errors
//
// Invalid values produce a *schemaerr.ValidationError tree. Its Kind places
// the failure in a taxonomy (minimum_length_error is a minimum_error is a
// range_error), so callers can match broadly or precisely with errors.Is.
// Broken schemas produce *schemaerr.SchemaError or
// *schemaerr.ReferenceError instead.
//
// # Packages
//
//   - schema: the schema model, parser, builders and FromType
//   - ref: reference resolution across documents
//   - format: the format checker registry and built-in formats
//   - validator: the compiler and validation engine
//   - schemaerr: error kinds and error types
//   - loader: reading schemas and documents from JSON and YAML files
package jsonschema
