package placeholder

import (
	"fmt"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

const (
	allowedValuesRule = `value in allowed`
	regexRule         = `value matches pattern`
)

// programs caches compiled rule programs by source.
var programs sync.Map

func loadOrCompile(rule string, env map[string]any) (*exprvm.Program, error) {
	if cached, ok := programs.Load(rule); ok {
		return cached.(*exprvm.Program), nil
	}
	program, err := exprlang.Compile(rule, exprlang.Env(env), exprlang.AsBool())
	if err != nil {
		return nil, fmt.Errorf("placeholder: compiling %q: %w", rule, err)
	}
	actual, _ := programs.LoadOrStore(rule, program)
	return actual.(*exprvm.Program), nil
}

// Check reports whether value satisfies the clause. Modifiers accept every
// value.
func (c Clause) Check(value string) (bool, error) {
	var rule string
	var env map[string]any
	switch c.Kind {
	case ClauseAllowedValues:
		rule = allowedValuesRule
		env = map[string]any{"value": value, "allowed": c.Values}
	case ClauseRegex:
		rule = regexRule
		env = map[string]any{"value": value, "pattern": anchor(c.Args)}
	default:
		return true, nil
	}

	program, err := loadOrCompile(rule, env)
	if err != nil {
		return false, err
	}
	out, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("placeholder: evaluating %s: %w", c, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Violation describes a value rejected by a validator clause.
type Violation struct {
	Value  string
	Clause Clause
}

// Error implements error.
func (v *Violation) Error() string {
	switch v.Clause.Kind {
	case ClauseAllowedValues:
		return fmt.Sprintf("value %q is not one of the allowed values [%s]", v.Value, v.Clause.Args)
	case ClauseRegex:
		return fmt.Sprintf("value %q does not match pattern %q", v.Value, v.Clause.Args)
	default:
		return fmt.Sprintf("value %q rejected by %s", v.Value, v.Clause)
	}
}

// Check evaluates every validator of e against value and returns the first
// violation, or nil when value is acceptable.
func (e *Expression) Check(value string) (*Violation, error) {
	if e == nil {
		return nil, nil
	}
	for _, c := range e.Validators {
		ok, err := c.Check(value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Violation{Value: value, Clause: c}, nil
		}
	}
	return nil, nil
}
