package jsonschema_test

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/jsonschema"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

func ExampleValidate() {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer"},
		},
	}

	_, err := jsonschema.Validate(map[string]any{"name": "Bob", "age": "12"}, s)
	if e := schemaerr.Find(err, schemaerr.KindType); e != nil {
		fmt.Println(e.Path, e.Message)
	}
	// Output:
	// age expected integer, got string
}

func ExampleCompile() {
	type Address struct {
		Street string `json:"street"`
		City   string `json:"city,omitempty"`
	}

	v, err := jsonschema.Compile(schema.FromType(Address{}))
	if err != nil {
		panic(err)
	}

	_, err = v.Validate(Address{Street: "Main St"})
	fmt.Println(err)

	_, err = v.Validate(map[string]any{"city": "Springfield"})
	fmt.Println(errors.Is(err, schemaerr.KindRequiredProperty), err)
	// Output:
	// <nil>
	// true missing required property "street"
}

func ExampleRegisterFormat() {
	jsonschema.RegisterFormat("even-length", func(s string) error {
		if len(s)%2 != 0 {
			return errors.New("odd length")
		}
		return nil
	})

	_, err := jsonschema.Validate("abc", []byte(`{"format":"even-length"}`))
	fmt.Println(jsonschema.KindOf(err))
	// Output:
	// format_error
}
