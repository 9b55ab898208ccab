package validator

import (
	"fmt"

	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/tree"
)

// ValidateValues checks the values override supplies for template paths.
//
// A "type" field must equal the template's. A value filling a placeholder
// must satisfy the placeholder's validator clauses; a placeholder whose
// clauses cannot be parsed yields a warning and its value is not checked.
func ValidateValues(template, override *fqn.Map, matcher placeholder.Matcher) []ValidationError {
	if matcher == nil {
		matcher = placeholder.Default()
	}

	var out []ValidationError
	for p, ov := range override.All() {
		tv, ok := template.Get(p)
		if !ok {
			continue
		}

		if p.IsStructural() {
			if p.IsType() && tv.Text() != ov.Text() {
				out = append(out, issueAt(p, ov, SeverityError,
					fmt.Sprintf("type %q differs from the template type %q", ov.Text(), tv.Text())))
			}
			continue
		}

		if !placeholder.IsRuntimeInput(matcher, tv) || placeholder.IsExpression(ov) || !ov.IsScalar() {
			continue
		}

		expr, err := matcher.Parse(tv.Text())
		if err != nil {
			out = append(out, issueAt(p, ov, SeverityWarning, err.Error()))
			continue
		}
		violation, err := expr.Check(ov.Text())
		switch {
		case err != nil:
			out = append(out, issueAt(p, ov, SeverityWarning, err.Error()))
		case violation != nil:
			out = append(out, issueAt(p, ov, SeverityError, violation.Error()))
		}
	}
	return out
}

func issueAt(p fqn.Path, value *tree.Node, sev Severity, msg string) ValidationError {
	return ValidationError{
		Path:       p.String(),
		Expression: p.Expression(),
		Message:    msg,
		Severity:   sev,
		Value:      value.Text(),
	}
}
