package format

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// CEL compiles a boolean CEL expression into a Checker. The expression sees
// the candidate string as the variable "value":
//
//	format.CEL(`value.matches("^[A-Z]{3}-[0-9]+$") && size(value) <= 12`)
//
// Compilation errors and non-boolean expressions are reported immediately;
// evaluation errors are returned by the checker.
func CEL(expr string) (Checker, error) {
	env, err := cel.NewEnv(cel.Variable("value", cel.StringType))
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile CEL format %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("CEL format %q must evaluate to bool, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("plan CEL format %q: %w", expr, err)
	}

	return func(value string) error {
		out, _, err := prg.Eval(map[string]any{"value": value})
		if err != nil {
			return fmt.Errorf("evaluate %q: %w", expr, err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return fmt.Errorf("evaluate %q: non-boolean result %v", expr, out.Value())
		}
		if !ok {
			return errors.New("does not satisfy " + expr)
		}
		return nil
	}, nil
}
