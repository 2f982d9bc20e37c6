package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// NamePolicy holds a compiled CEL boolean expression evaluated against a
// proposed element name; true means the name is accepted. An editor
// façade can use one to reject names the core's bare non-empty-string
// invariant (§3) doesn't itself rule out — reserved characters, reserved
// prefixes, length limits, and so on.
type NamePolicy struct {
	Expression string
	program    cel.Program
}

// NewNamePolicy compiles expression, which must reference the string
// variable `name` and evaluate to a bool.
func NewNamePolicy(expression string) (*NamePolicy, error) {
	if expression == "" {
		return nil, fmt.Errorf("rules: name policy expression must not be empty")
	}
	env, err := cel.NewEnv(cel.Variable("name", cel.StringType))
	if err != nil {
		return nil, fmt.Errorf("rules: creating CEL environment: %w", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rules: compiling name policy: %w", issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rules: building name policy program: %w", err)
	}
	return &NamePolicy{Expression: expression, program: program}, nil
}

// Allows reports whether name is accepted by the policy.
func (p *NamePolicy) Allows(name string) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{"name": name})
	if err != nil {
		return false, fmt.Errorf("rules: evaluating name policy: %w", err)
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rules: name policy %q did not evaluate to bool", p.Expression)
	}
	return v, nil
}

// DefaultNamePolicy rejects names containing a path separator or a space —
// the minimum any rrpath-segment name must satisfy regardless of any
// editor-specific policy layered on top.
func DefaultNamePolicy() *NamePolicy {
	p, err := NewNamePolicy(`!name.contains("/") && !name.contains(" ")`)
	if err != nil {
		panic(err)
	}
	return p
}
