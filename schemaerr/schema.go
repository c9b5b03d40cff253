package schemaerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for schema-level failures.
var (
	// ErrInvalidSchema matches every *SchemaError through errors.Is.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnresolvable matches every *ReferenceError through errors.Is.
	ErrUnresolvable = errors.New("unresolvable reference")

	// ErrUnsupportedInput is returned when a schema argument has a Go type
	// that cannot be interpreted as a schema.
	ErrUnsupportedInput = errors.New("unsupported schema input")
)

// SchemaError reports a schema document that is not a legal schema, or a
// keyword combination that cannot be compiled.
type SchemaError struct {
	// Pointer is the JSON pointer of the offending schema, e.g.
	// "#/properties/name".
	Pointer string

	// Keyword is the offending keyword, if any.
	Keyword string

	// Message is a human-readable description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// NewSchemaError creates a SchemaError.
func NewSchemaError(pointer, keyword, message string) *SchemaError {
	return &SchemaError{
		Pointer: pointer,
		Keyword: keyword,
		Message: message,
	}
}

// WithCause sets the underlying error and returns the same instance.
func (e *SchemaError) WithCause(err error) *SchemaError {
	e.Err = err
	return e
}

// Error formats the error as "invalid schema at <pointer> (<keyword>): message: cause".
func (e *SchemaError) Error() string {
	var parts []string
	head := "invalid schema"
	if e.Pointer != "" {
		head += " at " + e.Pointer
	}
	if e.Keyword != "" {
		head += " (" + e.Keyword + ")"
	}
	parts = append(parts, head)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// ReferenceError reports a $ref that could not be resolved.
type ReferenceError struct {
	// Ref is the unresolved reference string as written in the schema.
	Ref string

	// Base is the URI of the document the reference is relative to.
	Base string

	// Err is the underlying error, if any.
	Err error
}

// NewReferenceError creates a ReferenceError.
func NewReferenceError(ref, base string, err error) *ReferenceError {
	return &ReferenceError{Ref: ref, Base: base, Err: err}
}

// Error formats the error as "unresolvable reference <ref> (in <base>): cause".
func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("unresolvable reference %q", e.Ref)
	if e.Base != "" {
		msg += " (in " + e.Base + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUnresolvable.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvable
}
