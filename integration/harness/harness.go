//go:build integration

// Package harness provides the integration test framework for inputsets.
// It enables declarative scenario-driven testing via YAML files.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/erraggy/inputsets/merger"
	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/tree"
	"github.com/erraggy/inputsets/validator"
)

// Scenario represents a complete integration test scenario.
type Scenario struct {
	// Name is a short, descriptive name for the scenario
	Name string `yaml:"name"`
	// Description provides additional context about what the scenario tests
	Description string `yaml:"description,omitempty"`
	// Base is the name of the base pipeline from the bases/ directory
	Base string `yaml:"base"`
	// Overrides are the input sets, applied in order
	Overrides []*tree.Node `yaml:"overrides,omitempty"`
	// Pipeline is the sequence of steps to execute
	Pipeline []Step `yaml:"pipeline"`
	// Debug contains optional debug settings
	Debug DebugConfig `yaml:"debug,omitempty"`
	// Skip provides a reason to skip this scenario (if set, scenario is skipped)
	Skip string `yaml:"skip,omitempty"`
	// ExpectedFailure marks this scenario as a known failing case
	ExpectedFailure string `yaml:"expected-failure,omitempty"`

	// filePath is the path to the scenario file (set by loader)
	filePath string
}

// Step represents a single step in the test pipeline.
type Step struct {
	// Name is the step type (template, strip, merge, validate)
	Name string `yaml:"step"`
	// Config contains step-specific configuration
	Config StepConfig `yaml:"config,omitempty"`
	// Expect defines the expected outcome (valid, invalid, error, success)
	Expect string `yaml:"expect,omitempty"`
	// Assertions are detailed checks to perform after the step
	Assertions []Assertion `yaml:"assertions,omitempty"`
	// ErrorContains checks that an error message contains this substring
	ErrorContains string `yaml:"error-contains,omitempty"`
}

// StepConfig holds the options a step passes to the library.
type StepConfig struct {
	// AppendValidator keeps placeholder validators next to merged values
	AppendValidator bool `yaml:"append-validator,omitempty"`
	// Scope restricts a merge to these stage or step identifiers
	Scope []string `yaml:"scope,omitempty"`
	// ScopeMode is "outermost" (the default) or "every"
	ScopeMode string `yaml:"scope-mode,omitempty"`
	// Override selects the input set a validate step checks, starting at 1
	Override int `yaml:"override,omitempty"`
	// NoWarnings drops warnings from a validate step
	NoWarnings bool `yaml:"no-warnings,omitempty"`
}

// Assertion represents a validation check on a step result.
type Assertion struct {
	// Values maps display paths to the scalar text expected in the
	// step's output document
	Values map[string]string `yaml:"values,omitempty"`
	// Absent lists display paths that must not appear in the output document
	Absent []string `yaml:"absent,omitempty"`
	// LeafCount is the number of leaves in the output document
	LeafCount *int `yaml:"leaf-count,omitempty"`
	// Empty asserts that the step produced no document
	Empty *bool `yaml:"empty,omitempty"`
	// InvalidPaths lists the display form of the paths that must be reported
	// as invalid, in order
	InvalidPaths []string `yaml:"invalid-paths,omitempty"`
	// Validation assertions
	ErrorCount      *int   `yaml:"error-count,omitempty"`
	ErrorContains   string `yaml:"error-contains,omitempty"`
	WarningCount    *int   `yaml:"warning-count,omitempty"`
	WarningContains string `yaml:"warning-contains,omitempty"`
}

// DebugConfig contains debug settings for a scenario.
type DebugConfig struct {
	// DumpAfter specifies which steps should dump their output
	DumpAfter []string `yaml:"dump-after,omitempty"`
	// Verbose enables verbose logging
	Verbose bool `yaml:"verbose,omitempty"`
}

// StepResult contains the result of executing a single step.
type StepResult struct {
	// StepName is the name of the step that was executed
	StepName string
	// Success indicates whether the step completed without error
	Success bool
	// Error contains any error that occurred
	Error error
	// Duration is how long the step took to execute
	Duration time.Duration
	// Output contains step-specific output data
	Output StepOutput
	// AssertionResults contains results of any assertions
	AssertionResults []AssertionResult
}

// StepOutput contains the output data from a step.
type StepOutput struct {
	// Document is set after a template, strip or merge step
	Document *tree.Node
	// MergeResult is set after a merge step
	MergeResult *merger.Result
	// ValidationResult is set after a validate step
	ValidationResult *validator.ValidationResult
}

// AssertionResult contains the result of a single assertion.
type AssertionResult struct {
	// Assertion is the original assertion
	Assertion Assertion
	// Passed indicates whether the assertion passed
	Passed bool
	// Message provides details on failure
	Message string
	// Expected is the expected value
	Expected any
	// Actual is the actual value
	Actual any
}

// PipelineResult contains the result of running a complete pipeline.
type PipelineResult struct {
	// Scenario is the scenario that was executed
	Scenario *Scenario
	// StepResults contains results for each step
	StepResults []StepResult
	// Success indicates whether the entire pipeline passed
	Success bool
	// Duration is the total pipeline execution time
	Duration time.Duration
	// FailedStep is the name of the first step that failed (if any)
	FailedStep string
	// Error is the first error encountered
	Error error
}

// RunScenario executes a complete scenario and returns the result.
func RunScenario(t *testing.T, scenario *Scenario, basesDir string) *PipelineResult {
	t.Helper()

	start := time.Now()
	result := &PipelineResult{
		Scenario:    scenario,
		StepResults: make([]StepResult, 0, len(scenario.Pipeline)),
		Success:     true,
	}

	if scenario.Skip != "" {
		t.Skipf("Skipping: %s", scenario.Skip)
		return result
	}

	basePath, err := ResolveBase(basesDir, scenario.Base)
	if err != nil {
		result.Success = false
		result.Error = err
		return result
	}

	parsed, err := parser.ParseWithOptions(parser.WithFilePath(basePath))
	if err != nil {
		result.Success = false
		result.Error = fmt.Errorf("parse base %s: %w", scenario.Base, err)
		return result
	}

	pc := &PipelineContext{
		Base:     parsed.Document,
		Scenario: scenario,
		Debug:    scenario.Debug.Verbose || os.Getenv("INTEGRATION_DEBUG") == "1",
	}

	for i, step := range scenario.Pipeline {
		stepResult := ExecuteStep(t, pc, &step)
		result.StepResults = append(result.StepResults, stepResult)

		PrintStepResult(t, &step, &stepResult, i+1, len(scenario.Pipeline))
		if step.Name != "validate" && (pc.Debug || slices.Contains(scenario.Debug.DumpAfter, step.Name)) {
			DumpDocument(t, step.Name, stepResult.Output.Document)
		}

		if !stepResult.Success {
			result.Success = false
			result.FailedStep = step.Name
			result.Error = stepResult.Error
			break // Fail-fast
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResolveBase returns the path of the named base pipeline, accepting the
// name with or without its .yaml extension.
func ResolveBase(basesDir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("scenario has no base pipeline")
	}
	for _, candidate := range []string{name + ".yaml", name} {
		path := filepath.Join(basesDir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("base pipeline not found: %s", name)
}

// PipelineContext holds state during pipeline execution.
type PipelineContext struct {
	// Base is the parsed base pipeline
	Base *tree.Node
	// Scenario is the scenario being executed
	Scenario *Scenario
	// Debug enables debug output
	Debug bool
	// Template is the most recent template step output
	Template *tree.Node
	// MergeResult is the most recent merge result
	MergeResult *merger.Result
	// ValidationResult is the most recent validation result
	ValidationResult *validator.ValidationResult
}
