// Package inputerrors provides structured error types for the inputsets library.
//
// Import path: github.com/erraggy/inputsets/inputerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between fatal document errors and collected,
// reportable problems.
//
// # Error Types
//
//   - [DuplicatePathError]: a document defines the same leaf path twice (fatal)
//   - [InvalidOverridePathError]: an override targets a path the template does not expose (collected)
//   - [MalformedValidatorError]: a runtime-input placeholder carries an unparsable validator clause
//   - [ParseError]: YAML/JSON/JSONC parsing failures
//   - [ResourceLimitError]: resource exhaustion (nesting depth, file size)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//	if errors.Is(err, inputerrors.ErrDuplicatePath) {
//	    // the document is structurally invalid
//	}
//
//	var dup *inputerrors.DuplicatePathError
//	if errors.As(err, &dup) {
//	    fmt.Println("duplicate:", dup.Path)
//	}
package inputerrors
