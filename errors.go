package jsonschema

import (
	"errors"

	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// Sentinel errors, usable with errors.Is.
var (
	// ErrInvalidSchema matches every schema that cannot be compiled.
	ErrInvalidSchema = schemaerr.ErrInvalidSchema

	// ErrUnresolvable matches every reference that cannot be resolved.
	ErrUnresolvable = schemaerr.ErrUnresolvable

	// ErrUnsupportedInput indicates a schema argument of an unusable Go type.
	ErrUnsupportedInput = schemaerr.ErrUnsupportedInput
)

// Aliases for the error types returned by this package.
type (
	ValidationError = schemaerr.ValidationError
	SchemaError     = schemaerr.SchemaError
	ReferenceError  = schemaerr.ReferenceError
	Kind            = schemaerr.Kind
)

// IsValidationError reports whether err means the value was rejected, as
// opposed to the schema being unusable.
func IsValidationError(err error) bool {
	var v *schemaerr.ValidationError
	return errors.As(err, &v)
}

// IsSchemaError reports whether err means the schema could not be compiled.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidSchema) || errors.Is(err, ErrUnresolvable)
}

// KindOf returns the kind of a validation error, or the empty Kind when err
// is not one.
func KindOf(err error) Kind {
	var v *schemaerr.ValidationError
	if errors.As(err, &v) {
		return v.Kind
	}
	return ""
}
