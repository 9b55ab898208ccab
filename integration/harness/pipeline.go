//go:build integration

package harness

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/merger"
	"github.com/erraggy/inputsets/scope"
	"github.com/erraggy/inputsets/template"
	"github.com/erraggy/inputsets/tree"
	"github.com/erraggy/inputsets/validator"
)

// ExecuteStep executes a single pipeline step and returns the result.
func ExecuteStep(t *testing.T, pc *PipelineContext, step *Step) StepResult {
	t.Helper()

	start := time.Now()
	result := StepResult{
		StepName: step.Name,
		Success:  true,
	}

	var err error
	switch step.Name {
	case "template":
		err = executeTemplate(pc, &result)
	case "strip":
		err = executeStrip(pc, &result)
	case "merge":
		err = executeMerge(pc, step, &result)
	case "validate":
		err = executeValidate(pc, step, &result)
	default:
		err = fmt.Errorf("unknown step type: %s", step.Name)
	}

	result.Duration = time.Since(start)

	if err != nil {
		if step.Expect == "error" {
			if step.ErrorContains != "" && !strings.Contains(err.Error(), step.ErrorContains) {
				result.Success = false
				result.Error = fmt.Errorf("expected error containing %q, got: %v", step.ErrorContains, err)
				return result
			}
			result.Error = nil
			return result
		}
		result.Success = false
		result.Error = err
		return result
	}

	if step.Expect == "error" {
		result.Success = false
		result.Error = fmt.Errorf("expected error but step succeeded")
		return result
	}

	if vr := result.Output.ValidationResult; vr != nil {
		switch {
		case step.Expect == "valid" && !vr.Valid:
			result.Success = false
			result.Error = fmt.Errorf("expected valid override, got %d errors", vr.ErrorCount)
			return result
		case step.Expect == "invalid" && vr.Valid:
			result.Success = false
			result.Error = fmt.Errorf("expected invalid override, but validation passed")
			return result
		}
	}

	for _, assertion := range step.Assertions {
		ar := evaluateAssertion(&assertion, &result)
		result.AssertionResults = append(result.AssertionResults, ar)
		if !ar.Passed && result.Success {
			result.Success = false
			result.Error = fmt.Errorf("assertion failed: %s", ar.Message)
		}
	}

	return result
}

func executeTemplate(pc *PipelineContext, result *StepResult) error {
	doc, err := template.CreateTemplate(pc.Base, template.WithSourceName(pc.Scenario.Base))
	if err != nil {
		return err
	}
	pc.Template = doc
	result.Output.Document = doc
	return nil
}

func executeStrip(pc *PipelineContext, result *StepResult) error {
	doc, err := template.StripRuntimeInputs(pc.Base, template.WithSourceName(pc.Scenario.Base))
	if err != nil {
		return err
	}
	result.Output.Document = doc
	return nil
}

func executeMerge(pc *PipelineContext, step *Step, result *StepResult) error {
	opts := []merger.Option{merger.WithAppendValidator(step.Config.AppendValidator)}
	if len(step.Config.Scope) > 0 {
		mode, err := scope.ParseMode(step.Config.ScopeMode)
		if err != nil {
			return err
		}
		opts = append(opts, merger.WithScope(step.Config.Scope...), merger.WithScopeMode(mode))
	}

	mr, err := merger.MergeOverrides(pc.Base, pc.Scenario.Overrides, opts...)
	if err != nil {
		return err
	}
	pc.MergeResult = mr
	result.Output.MergeResult = mr
	result.Output.Document = mr.Document
	return nil
}

func executeValidate(pc *PipelineContext, step *Step, result *StepResult) error {
	if pc.Template == nil {
		if err := executeTemplate(pc, &StepResult{}); err != nil {
			return err
		}
	}
	tmpl := pc.Template
	if tmpl == nil {
		tmpl = tree.Object()
	}

	index := max(step.Config.Override, 1)
	if index > len(pc.Scenario.Overrides) {
		return fmt.Errorf("validate: override %d of %d does not exist", index, len(pc.Scenario.Overrides))
	}

	vr, err := validator.ValidateWithOptions(
		validator.WithTemplate(tmpl),
		validator.WithOverride(pc.Scenario.Overrides[index-1]),
		validator.WithIncludeWarnings(!step.Config.NoWarnings),
		validator.WithSourceName(fmt.Sprintf("override %d", index)),
	)
	if err != nil {
		return err
	}
	pc.ValidationResult = vr
	result.Output.ValidationResult = vr
	return nil
}

// evaluateAssertion evaluates a single assertion against a step's output.
func evaluateAssertion(assertion *Assertion, result *StepResult) AssertionResult {
	ar := AssertionResult{
		Assertion: *assertion,
		Passed:    true,
	}
	fail := func(expected, actual any, format string, args ...any) AssertionResult {
		ar.Passed = false
		ar.Expected = expected
		ar.Actual = actual
		ar.Message = fmt.Sprintf(format, args...)
		return ar
	}

	doc := result.Output.Document
	vr := result.Output.ValidationResult

	if assertion.Empty != nil {
		if empty := doc == nil; empty != *assertion.Empty {
			return fail(*assertion.Empty, empty, "empty: expected %t, got %t", *assertion.Empty, empty)
		}
	}

	if len(assertion.Values) > 0 || len(assertion.Absent) > 0 || assertion.LeafCount != nil {
		leaves, err := leafText(doc)
		if err != nil {
			return fail(nil, err, "flatten output: %v", err)
		}
		for path, want := range assertion.Values {
			got, ok := leaves[path]
			if !ok {
				return fail(want, nil, "values: %s is missing", path)
			}
			if got != want {
				return fail(want, got, "values: %s is %q, expected %q", path, got, want)
			}
		}
		for _, path := range assertion.Absent {
			if got, ok := leaves[path]; ok {
				return fail(nil, got, "absent: %s is present with %q", path, got)
			}
		}
		if assertion.LeafCount != nil && len(leaves) != *assertion.LeafCount {
			return fail(*assertion.LeafCount, len(leaves), "leaf-count: expected %d, got %d", *assertion.LeafCount, len(leaves))
		}
	}

	if assertion.InvalidPaths != nil {
		var actual []string
		switch {
		case result.Output.MergeResult != nil:
			actual = result.Output.MergeResult.InvalidPathStrings()
		case vr != nil:
			actual = vr.InvalidPaths
		}
		if !slices.Equal(actual, assertion.InvalidPaths) {
			return fail(assertion.InvalidPaths, actual, "invalid-paths: expected %v, got %v", assertion.InvalidPaths, actual)
		}
	}

	if assertion.ErrorCount != nil || assertion.WarningCount != nil ||
		assertion.ErrorContains != "" || assertion.WarningContains != "" {
		if vr == nil {
			return fail(nil, nil, "validation assertion on a step without a validation result")
		}
		if assertion.ErrorCount != nil && vr.ErrorCount != *assertion.ErrorCount {
			return fail(*assertion.ErrorCount, vr.ErrorCount, "error-count: expected %d, got %d", *assertion.ErrorCount, vr.ErrorCount)
		}
		if assertion.WarningCount != nil && vr.WarningCount != *assertion.WarningCount {
			return fail(*assertion.WarningCount, vr.WarningCount, "warning-count: expected %d, got %d", *assertion.WarningCount, vr.WarningCount)
		}
		if s := assertion.ErrorContains; s != "" && !anyContains(vr.Errors, s) {
			return fail(s, false, "error-contains: no error containing %q found", s)
		}
		if s := assertion.WarningContains; s != "" && !anyContains(vr.Warnings, s) {
			return fail(s, false, "warning-contains: no warning containing %q found", s)
		}
	}

	return ar
}

// leafText flattens doc and returns the text of each leaf keyed by its
// display path.
func leafText(doc *tree.Node) (map[string]string, error) {
	out := make(map[string]string)
	if doc == nil {
		return out, nil
	}
	res, err := flatten.Flatten(doc, flatten.WithSourceName("step output"))
	if err != nil {
		return nil, err
	}
	for p, v := range res.Map.All() {
		out[p.String()] = v.Text()
	}
	return out, nil
}

func anyContains(list []validator.ValidationError, s string) bool {
	for _, e := range list {
		if strings.Contains(e.String(), s) {
			return true
		}
	}
	return false
}
