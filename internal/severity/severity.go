// Package severity provides the severity levels of issues reported while
// checking override documents against a template.
//
// The levels are ordered from most to least severe in declaration order:
//   - SeverityError: the override cannot be used as written
//   - SeverityWarning: the override or template is suspicious but usable
//   - SeverityInfo: informational notices
package severity

import "fmt"

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError marks a value the template does not accept, or an
	// override path the template does not expose.
	SeverityError Severity = iota

	// SeverityWarning marks problems that do not block a merge, such as a
	// template placeholder whose validator clause cannot be parsed.
	SeverityWarning

	// SeverityInfo marks informational notices.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so JSON reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityError || s > SeverityInfo {
		return nil, fmt.Errorf("severity: unknown level %d", int(s))
	}
	return []byte(s.String()), nil
}

// Parse returns the severity named name.
func Parse(name string) (Severity, error) {
	switch name {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q", name)
	}
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return s <= threshold
}
