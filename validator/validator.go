package validator

import (
	"fmt"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/internal/issues"
	"github.com/erraggy/inputsets/internal/severity"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/tree"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates an override the template does not accept
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a problem that does not block a merge
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of checking an override document
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool `json:"valid" yaml:"valid"`
	// InvalidPaths lists the display form of override paths the template
	// does not expose, in override order
	InvalidPaths []string `json:"invalid_paths,omitempty" yaml:"invalid_paths,omitempty"`
	// Errors contains all validation errors, including invalid paths
	Errors []ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
	// Warnings contains all validation warnings
	Warnings []ValidationError `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// ErrorCount is the total number of errors
	ErrorCount int `json:"error_count" yaml:"error_count"`
	// WarningCount is the total number of warnings
	WarningCount int `json:"warning_count" yaml:"warning_count"`
	// SourcePath identifies the override document
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// Validator checks override documents against templates
type Validator struct {
	// IncludeWarnings determines whether to report warnings
	IncludeWarnings bool
	// Matcher recognizes runtime-input placeholders; nil means the default grammar
	Matcher placeholder.Matcher
	// Logger receives diagnostics; nil disables logging
	Logger inputsets.Logger
	// KeyResolvers decides list element identity; nil means the defaults
	KeyResolvers []flatten.KeyResolver
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings: true,
	}
}

// ValidateWithOptions checks an override document using functional options.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithTemplate(templateDoc),
//	    validator.WithOverride(inputSetDoc),
//	    validator.WithSourceName("inputs.yaml"),
//	)
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		IncludeWarnings: cfg.includeWarnings,
		Matcher:         cfg.matcher,
		Logger:          cfg.logger,
		KeyResolvers:    cfg.keyResolvers,
	}
	result, err := v.Validate(cfg.template, cfg.override)
	if err != nil {
		return nil, err
	}
	result.SourcePath = cfg.sourceName
	for i := range result.Errors {
		result.Errors[i].File = cfg.sourceName
	}
	for i := range result.Warnings {
		result.Warnings[i].File = cfg.sourceName
	}
	return result, nil
}

// Validate checks override against templateDoc, a document whose leaves are
// runtime-input placeholders (as produced by template.CreateTemplate) plus
// the identity and type fields of its list elements.
func (v *Validator) Validate(templateDoc, override *tree.Node) (*ValidationResult, error) {
	f := &flatten.Flattener{KeyResolvers: v.KeyResolvers, SourceName: "template"}
	tmpl, err := f.Flatten(templateDoc)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	f.SourceName = "override"
	over, err := f.Flatten(override)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	matcher := v.Matcher
	if matcher == nil {
		matcher = placeholder.Default()
	}

	result := &ValidationResult{}
	invalidMessage := "the template does not expose this path as a runtime input"
	if tmpl.Map.Len() == 0 {
		invalidMessage = "the template has no runtime inputs"
	}
	for _, p := range InvalidPaths(tmpl.Map, over.Map) {
		result.InvalidPaths = append(result.InvalidPaths, p.String())
		v.add(result, ValidationError{
			Path:       p.String(),
			Expression: p.Expression(),
			Message:    invalidMessage,
			Severity:   SeverityError,
		})
	}
	for _, issue := range ValidateValues(tmpl.Map, over.Map, matcher) {
		v.add(result, issue)
	}

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0

	inputsets.OrNop(v.Logger).Debug("validated override",
		"templateEntries", tmpl.Map.Len(),
		"overrideEntries", over.Map.Len(),
		"errors", result.ErrorCount,
		"warnings", result.WarningCount,
	)
	return result, nil
}

// add files an issue under errors or warnings.
func (v *Validator) add(result *ValidationResult, issue ValidationError) {
	switch issue.Severity {
	case SeverityError:
		result.Errors = append(result.Errors, issue)
	default:
		if v.IncludeWarnings {
			result.Warnings = append(result.Warnings, issue)
		}
	}
}
