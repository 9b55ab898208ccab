// Package issues provides the issue type reported when override documents
// are checked against a template.
package issues

import (
	"fmt"

	"github.com/erraggy/inputsets/internal/severity"
)

// Issue represents a single problem found in an override document.
type Issue struct {
	// Path is the display form of the offending path
	// (e.g., "pipeline.stages.stage[identifier:build].spec.timeout")
	Path string `json:"path"`
	// Expression is the dotted expression form of the path
	// (e.g., "pipeline.stages.build.spec.timeout")
	Expression string `json:"expression,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Value is the offending value (optional)
	Value string `json:"value,omitempty"`
	// File is the source document, if known
	File string `json:"file,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Location(), i.Message)
}

// Location returns "file: path" when the source file is known, and the path
// otherwise.
func (i Issue) Location() string {
	if i.File != "" {
		return i.File + ": " + i.Path
	}
	return i.Path
}

// Count returns the number of issues at each severity.
func Count(list []Issue) (errors, warnings, infos int) {
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityError:
			errors++
		case severity.SeverityWarning:
			warnings++
		case severity.SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}
