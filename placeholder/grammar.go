package placeholder

import (
	"strings"

	"github.com/erraggy/inputsets/inputerrors"
	"github.com/erraggy/inputsets/tree"
)

// DefaultMarker is the token that opens a runtime input.
const DefaultMarker = "<+input>"

// ExpressionPrefix opens any expression, runtime input or not. Values that
// start with it are resolved by the embedding system at run time.
const ExpressionPrefix = "<+"

// Matcher recognizes and parses runtime-input placeholders.
type Matcher interface {
	// Match reports whether raw is a runtime-input placeholder.
	Match(raw string) bool
	// Parse decomposes a placeholder into its marker and clauses. It returns
	// an *inputerrors.MalformedValidatorError when the clauses cannot be
	// parsed.
	Parse(raw string) (*Expression, error)
}

// Grammar is the default Matcher.
type Grammar struct {
	// Marker is the opening token; empty means DefaultMarker.
	Marker string
}

// Default returns the grammar with the default marker.
func Default() Grammar {
	return Grammar{Marker: DefaultMarker}
}

func (g Grammar) marker() string {
	if g.Marker == "" {
		return DefaultMarker
	}
	return g.Marker
}

// Match implements Matcher.
func (g Grammar) Match(raw string) bool {
	return strings.HasPrefix(Unquote(raw), g.marker())
}

// Parse implements Matcher.
func (g Grammar) Parse(raw string) (*Expression, error) {
	s := Unquote(raw)
	marker := g.marker()
	if !strings.HasPrefix(s, marker) {
		return nil, &inputerrors.MalformedValidatorError{
			Expression: raw,
			Message:    "does not start with " + marker,
		}
	}

	clauses, err := parseClauses(s[len(marker):])
	if err != nil {
		return nil, &inputerrors.MalformedValidatorError{Expression: raw, Message: err.Error()}
	}

	expr := &Expression{Raw: raw, Marker: marker}
	for _, c := range clauses {
		if c.Kind.IsValidator() {
			expr.Validators = append(expr.Validators, c)
		} else {
			expr.Modifiers = append(expr.Modifiers, c)
		}
	}
	return expr, nil
}

// Unquote removes every double quote from raw.
func Unquote(raw string) string {
	if !strings.Contains(raw, `"`) {
		return raw
	}
	return strings.ReplaceAll(raw, `"`, "")
}

// IsRuntimeInput reports whether n is a string scalar that m matches.
func IsRuntimeInput(m Matcher, n *tree.Node) bool {
	s, ok := stringValue(n)
	return ok && m.Match(s)
}

// IsExpression reports whether n is a string scalar holding any expression,
// such as "<+pipeline.variables.region>" or a runtime input.
func IsExpression(n *tree.Node) bool {
	s, ok := stringValue(n)
	return ok && strings.HasPrefix(strings.TrimSpace(Unquote(s)), ExpressionPrefix)
}

func stringValue(n *tree.Node) (string, bool) {
	if !n.IsScalar() {
		return "", false
	}
	s, ok := n.Value.(string)
	return s, ok
}
