package schemaerr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one way a value disagrees with a schema.
// Container failures carry their children in Causes.
type ValidationError struct {
	// Kind classifies the failure.
	Kind Kind

	// Path locates the failing value from the root of the validated document.
	Path Path

	// Keyword is the schema keyword responsible for the failure.
	Keyword string

	// Message is a human-readable description without the path prefix.
	Message string

	// Value is the offending value.
	Value any

	// Details holds keyword parameters, e.g. "expected_minimum".
	Details map[string]any

	// Causes holds nested failures that explain this one.
	Causes []*ValidationError
}

// New creates a ValidationError for keyword with the kind mapped by
// KeywordKind.
//
// Example:
//
//	err := schemaerr.New("minLength", "string is too short").
//	    WithPath(path).
//	    WithDetails(map[string]any{"expected_minimum": 2})
func New(keyword, message string) *ValidationError {
	return &ValidationError{
		Kind:    KeywordKind(keyword),
		Keyword: keyword,
		Message: message,
	}
}

// Newf is New with a formatted message.
func Newf(keyword, format string, args ...any) *ValidationError {
	return New(keyword, fmt.Sprintf(format, args...))
}

// WithKind overrides the kind. It returns the same instance for chaining
// and must only be used while the error is being built.
func (e *ValidationError) WithKind(kind Kind) *ValidationError {
	e.Kind = kind
	return e
}

// WithPath sets the location of the failing value.
func (e *ValidationError) WithPath(path Path) *ValidationError {
	e.Path = path
	return e
}

// WithValue records the offending value.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithDetails records keyword parameters.
func (e *ValidationError) WithDetails(details map[string]any) *ValidationError {
	e.Details = details
	return e
}

// WithCauses appends nested failures.
func (e *ValidationError) WithCauses(causes ...*ValidationError) *ValidationError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// Error renders "path: message" followed by the first cause. Causes that
// share the parent's path omit the repeated prefix.
//
// Examples:
//   - "age: expected integer, got string"
//   - "object has 1 invalid property: age: invalid property value: expected integer, got string"
func (e *ValidationError) Error() string {
	var b strings.Builder
	e.write(&b, nil, true)
	return b.String()
}

func (e *ValidationError) write(b *strings.Builder, parent Path, root bool) {
	if len(e.Path) > 0 && (root || !e.Path.Equal(parent)) {
		b.WriteString(e.Path.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Causes) == 0 {
		return
	}
	b.WriteString(": ")
	e.Causes[0].write(b, e.Path, false)
	if n := len(e.Causes) - 1; n > 0 {
		fmt.Fprintf(b, " (and %d more)", n)
	}
}

// Unwrap exposes the causes so errors.Is and errors.As search the tree.
func (e *ValidationError) Unwrap() []error {
	if len(e.Causes) == 0 {
		return nil
	}
	errs := make([]error, len(e.Causes))
	for i, c := range e.Causes {
		errs[i] = c
	}
	return errs
}

// Is matches a Kind target against this error's kind ancestry, and a
// *ValidationError target by kind ancestry and, when set, path.
func (e *ValidationError) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind.IsA(t)
	case *ValidationError:
		if t.Kind != "" && !e.Kind.IsA(t.Kind) {
			return false
		}
		return t.Path == nil || e.Path.Equal(t.Path)
	}
	return false
}

// Walk visits e and its causes depth-first. Returning false from fn stops
// the descent below the current error.
func (e *ValidationError) Walk(fn func(*ValidationError) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Causes {
		c.Walk(fn)
	}
}

// Leaves returns the failures without causes, in depth-first order. For
// an error without causes it returns the error itself.
func (e *ValidationError) Leaves() []*ValidationError {
	var leaves []*ValidationError
	e.Walk(func(v *ValidationError) bool {
		if len(v.Causes) == 0 {
			leaves = append(leaves, v)
		}
		return true
	})
	return leaves
}

// Find returns the first ValidationError in err's tree whose kind is, or
// descends from, kind. It returns nil when none matches.
func Find(err error, kind Kind) *ValidationError {
	var root *ValidationError
	if !errors.As(err, &root) {
		return nil
	}
	var found *ValidationError
	root.Walk(func(v *ValidationError) bool {
		if found != nil {
			return false
		}
		if v.Kind.IsA(kind) {
			found = v
			return false
		}
		return true
	})
	return found
}

// AsValidation extracts the outermost ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}
