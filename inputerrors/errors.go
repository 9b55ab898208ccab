package inputerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrDuplicatePath indicates a document addresses the same leaf path twice.
	ErrDuplicatePath = errors.New("duplicate path")

	// ErrInvalidOverridePath indicates an override path absent from the template.
	ErrInvalidOverridePath = errors.New("invalid override path")

	// ErrMalformedValidator indicates a placeholder with an unparsable validator clause.
	ErrMalformedValidator = errors.New("malformed validator expression")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// DuplicatePathError reports that two distinct positions of a document
// produced the same path, e.g. two sibling list elements sharing an identifier.
type DuplicatePathError struct {
	// Path is the display form of the offending path
	Path string
	// Source identifies the document (file path or input name), if known
	Source string
}

// Error returns a human-readable error message.
func (e *DuplicatePathError) Error() string {
	msg := "duplicate path"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	return msg + ": the element is defined more than once"
}

// Unwrap returns nil as DuplicatePathError has no underlying cause.
func (e *DuplicatePathError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DuplicatePathError) Is(target error) bool {
	return target == ErrDuplicatePath
}

// InvalidOverridePathError reports an override path that is neither a
// runtime input of the template nor an ancestor or descendant of one.
type InvalidOverridePathError struct {
	// Path is the display form of the override path
	Path string
	// Message explains why the path is unusable
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidOverridePathError) Error() string {
	msg := "invalid override path"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as InvalidOverridePathError has no underlying cause.
func (e *InvalidOverridePathError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *InvalidOverridePathError) Is(target error) bool {
	return target == ErrInvalidOverridePath
}

// MalformedValidatorError represents a placeholder that starts with the
// runtime-input marker but whose validator clause cannot be parsed.
type MalformedValidatorError struct {
	// Expression is the raw placeholder text
	Expression string
	// Message describes what could not be parsed
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedValidatorError) Error() string {
	msg := "malformed validator expression"
	if e.Expression != "" {
		msg += fmt.Sprintf(" %q", e.Expression)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedValidatorError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedValidatorError) Is(target error) bool {
	return target == ErrMalformedValidator
}

// ParseError represents a failure to parse a document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "nesting_depth", "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
