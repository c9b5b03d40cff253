// Package schemaerr defines the error values produced while parsing,
// compiling and applying JSON Schemas.
//
// # Overview
//
// Two categories of errors are kept apart:
//
//   - *SchemaError and *ReferenceError describe problems with the schema
//     itself (malformed keywords, unresolvable $ref pointers). They are
//     returned by parsing and compilation.
//   - *ValidationError describes how a value disagrees with a schema. It is
//     the only error type returned when a compiled validator is applied.
//
// # Kinds
//
// Every ValidationError carries a Kind from a closed taxonomy. Kinds form a
// tree through an explicit parent table instead of type embedding, so a
// caller can match either the exact kind or any ancestor:
//
//	var verr *schemaerr.ValidationError
//	if errors.As(err, &verr) && verr.Kind.IsA(schemaerr.KindObject) {
//	    // some object-level keyword failed
//	}
//
// Kind implements error, which lets errors.Is walk the whole cause tree:
//
//	if errors.Is(err, schemaerr.KindType) {
//	    // somewhere in the tree a value had the wrong type
//	}
//
// # Cause trees
//
// Container failures (objects and arrays) are exhaustive across their
// children: every failing property or item is attached to Causes. Use Find
// to locate the first error of a kind and Leaves to list the most specific
// failures.
//
//	if leaf := schemaerr.Find(err, schemaerr.KindType); leaf != nil {
//	    fmt.Println(leaf.Path) // e.g. children[0].children
//	}
package schemaerr
