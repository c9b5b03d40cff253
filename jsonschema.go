package jsonschema

import (
	"sync"

	"github.com/zero-day-ai/jsonschema/format"
	"github.com/zero-day-ai/jsonschema/validator"
)

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the engine used by the package-level functions. It uses
// the global format registry.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := New()
		if err != nil {
			panic("jsonschema: default engine: " + err.Error())
		}
		defaultEngine = e
	})
	return defaultEngine
}

// Validate checks value against s and returns value unchanged on success.
// Compilations of s are cached.
//
// Example:
//
//	_, err := jsonschema.Validate(map[string]any{"name": "B"}, map[string]any{
//		"properties": map[string]any{"name": map[string]any{"minLength": 2}},
//	})
//	// err: object has 1 invalid property: name: invalid property value: length must be at least 2, got 1
func Validate(value, s any) (any, error) {
	return Default().Validate(value, s)
}

// Compile returns a reusable validator for s.
func Compile(s any) (*validator.Validator, error) {
	return Default().Compile(s)
}

// RegisterFormat installs a checker for a "format" name in the global
// registry, replacing any previous checker. Validators consult the
// registry on every call, so existing validators pick it up.
func RegisterFormat(name string, checker format.Checker) {
	format.Register(name, checker)
}
