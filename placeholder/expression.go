package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

// ClauseKind identifies a dotted clause following the marker.
type ClauseKind uint8

const (
	// ClauseAllowedValues restricts the value to a fixed list.
	ClauseAllowedValues ClauseKind = iota
	// ClauseRegex requires the whole value to match a pattern.
	ClauseRegex
	// ClauseDefault supplies a default value.
	ClauseDefault
	// ClauseExecutionInput asks for the value when the execution reaches it.
	ClauseExecutionInput
)

var clauseNames = map[string]ClauseKind{
	"allowedValues":  ClauseAllowedValues,
	"regex":          ClauseRegex,
	"default":        ClauseDefault,
	"executionInput": ClauseExecutionInput,
}

// String returns the clause name as written in placeholders.
func (k ClauseKind) String() string {
	switch k {
	case ClauseAllowedValues:
		return "allowedValues"
	case ClauseRegex:
		return "regex"
	case ClauseDefault:
		return "default"
	case ClauseExecutionInput:
		return "executionInput"
	default:
		return "unknown"
	}
}

// IsValidator reports whether clauses of this kind constrain values.
func (k ClauseKind) IsValidator() bool {
	return k == ClauseAllowedValues || k == ClauseRegex
}

// Clause is one ".name(args)" part of a placeholder.
type Clause struct {
	Kind ClauseKind
	// Args is the raw text between the parentheses.
	Args string
	// Values holds the comma separated arguments of allowedValues and default.
	Values []string
}

// String renders the clause as written, without the leading dot.
func (c Clause) String() string {
	return c.Kind.String() + "(" + c.Args + ")"
}

// Expression is a parsed runtime-input placeholder.
type Expression struct {
	// Raw is the placeholder text as found in the document.
	Raw string
	// Marker is the opening token.
	Marker string
	// Validators are the allowedValues and regex clauses, in order.
	Validators []Clause
	// Modifiers are the default and executionInput clauses, in order.
	Modifiers []Clause
}

// HasValidator reports whether the placeholder constrains its value.
func (e *Expression) HasValidator() bool {
	return e != nil && len(e.Validators) > 0
}

// ValidatorSuffix renders the validator clauses, each with its leading dot,
// for example ".allowedValues(a,b)". It is empty when there is none.
func (e *Expression) ValidatorSuffix() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for _, v := range e.Validators {
		b.WriteByte('.')
		b.WriteString(v.String())
	}
	return b.String()
}

// Attach returns value followed by the validator clauses of e, so the
// constraint travels with a concrete value: "a" becomes "a.allowedValues(a,b)".
func (e *Expression) Attach(value string) string {
	return value + e.ValidatorSuffix()
}

// Default returns the argument of the default clause, if any.
func (e *Expression) Default() (string, bool) {
	if e == nil {
		return "", false
	}
	for _, m := range e.Modifiers {
		if m.Kind == ClauseDefault {
			return m.Args, true
		}
	}
	return "", false
}

// parseClauses parses a sequence of ".name(args)" clauses.
func parseClauses(s string) ([]Clause, error) {
	var clauses []Clause
	for s != "" {
		if s[0] != '.' {
			return nil, fmt.Errorf("unexpected %q after marker", s)
		}
		s = s[1:]

		open := strings.IndexByte(s, '(')
		if open <= 0 {
			return nil, fmt.Errorf("expected clause name followed by '(' in %q", s)
		}
		name := s[:open]
		kind, ok := clauseNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown clause %q", name)
		}

		end, err := matchParen(s, open)
		if err != nil {
			return nil, err
		}
		c, err := newClause(kind, s[open+1:end])
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
		s = s[end+1:]
	}
	return clauses, nil
}

// matchParen returns the index of the parenthesis closing the one at open.
// A backslash escapes the following character.
func matchParen(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unbalanced parentheses in %q", s)
}

func newClause(kind ClauseKind, args string) (Clause, error) {
	c := Clause{Kind: kind, Args: args}
	switch kind {
	case ClauseAllowedValues:
		c.Values = splitArgs(args)
		if len(c.Values) == 0 {
			return Clause{}, fmt.Errorf("allowedValues requires at least one value")
		}
	case ClauseRegex:
		if args == "" {
			return Clause{}, fmt.Errorf("regex requires a pattern")
		}
		if _, err := regexp.Compile(anchor(args)); err != nil {
			return Clause{}, fmt.Errorf("invalid regex %q: %w", args, err)
		}
	case ClauseDefault:
		c.Values = splitArgs(args)
	case ClauseExecutionInput:
		if strings.TrimSpace(args) != "" {
			return Clause{}, fmt.Errorf("executionInput takes no arguments")
		}
	}
	return c, nil
}

// splitArgs splits args on commas outside parentheses and trims each value.
func splitArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(args[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(args[start:]))
}

// anchor makes pattern match whole values only.
func anchor(pattern string) string {
	return "^(?:" + pattern + ")$"
}
