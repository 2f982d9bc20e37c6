package rules

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
)

// PropsComparator holds a compiled CEL expression comparing two payload
// property maps (mapX, mapY) and reducing them to an int: conventionally
// 0 for "equivalent", nonzero otherwise, letting callers encode
// domain-specific notions of sameness (e.g. ignoring a timestamp field)
// that plain structural equality can't express.
type PropsComparator struct {
	Expression string
	program    cel.Program
}

// NewPropsComparator compiles expression, which must reference mapX and
// mapY (both map[string]any) and evaluate to an int.
func NewPropsComparator(name, expression string) (*PropsComparator, error) {
	if name == "" {
		return nil, fmt.Errorf("rules: comparator name must not be empty")
	}
	if expression == "" {
		return nil, fmt.Errorf("rules: comparator expression must not be empty")
	}

	env, err := cel.NewEnv(
		cel.Variable("mapX", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("mapY", cel.MapType(cel.StringType, cel.AnyType)),
	)
	if err != nil {
		return nil, fmt.Errorf("rules: creating CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rules: compiling comparator %q: %w", name, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rules: building comparator program %q: %w", name, err)
	}
	return &PropsComparator{Expression: expression, program: program}, nil
}

// Compare evaluates the comparator against mapX and mapY.
func (c *PropsComparator) Compare(mapX, mapY map[string]any) (int, error) {
	out, _, err := c.program.Eval(map[string]any{"mapX": mapX, "mapY": mapY})
	if err != nil {
		return 0, fmt.Errorf("rules: evaluating comparator %q: %w", c.Expression, err)
	}
	native, err := out.ConvertToNative(reflect.TypeOf(int(0)))
	if err != nil {
		return 0, fmt.Errorf("rules: comparator %q did not evaluate to int: %w", c.Expression, err)
	}
	v, ok := native.(int)
	if !ok {
		return 0, fmt.Errorf("rules: comparator %q produced non-int result %v", c.Expression, native)
	}
	return v, nil
}
