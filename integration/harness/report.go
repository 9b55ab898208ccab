//go:build integration

package harness

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/tree"
)

// valueConfig renders assertion values with their types, so "3" and 3 are
// told apart in failure output.
var valueConfig = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// PrintStepResult prints the result of a single step to the test output.
func PrintStepResult(t *testing.T, step *Step, result *StepResult, stepNum, totalSteps int) {
	t.Helper()

	// Build status indicator
	var status string
	if result.Success {
		status = "PASS"
	} else {
		status = "FAIL"
	}

	// Build step info
	stepInfo := fmt.Sprintf("[%d/%d] %s", stepNum, totalSteps, step.Name)

	// Build duration string
	duration := formatDuration(result.Duration)

	// Build extra info based on step type and result
	var extra string
	if result.Output.MergeResult != nil {
		extra = fmt.Sprintf(" - %d entries, %d ignored paths",
			result.Output.MergeResult.Map.Len(), len(result.Output.MergeResult.InvalidPaths))
	} else if step.Name != "validate" && result.Output.Document == nil && result.Success {
		extra = " - empty document"
	}
	if result.Output.ValidationResult != nil {
		vr := result.Output.ValidationResult
		if vr.Valid {
			extra += " - valid"
		} else {
			extra += fmt.Sprintf(" - %d errors, %d warnings", vr.ErrorCount, vr.WarningCount)
		}
	}

	// Print the result line
	t.Logf("    %s %s (%s)%s", status, stepInfo, duration, extra)

	// Print error details if failed
	if !result.Success && result.Error != nil {
		t.Logf("        Error: %v", result.Error)
	}

	// Print assertion failures
	for _, ar := range result.AssertionResults {
		if !ar.Passed {
			t.Logf("        Assertion failed: %s", ar.Message)
			if ar.Expected != nil {
				t.Logf("          Expected: %s", valueConfig.Sprintf("%+v", ar.Expected))
			}
			if ar.Actual != nil {
				t.Logf("          Actual:   %s", valueConfig.Sprintf("%+v", ar.Actual))
			}
		}
	}
}

// PrintPipelineResult prints what a scenario produced: the merged entries
// and ignored override paths of its last merge and the verdict of its last
// validation.
func PrintPipelineResult(t *testing.T, result *PipelineResult) {
	t.Helper()

	var merged, ignored, violations int
	verdict := "not validated"
	for _, sr := range result.StepResults {
		if mr := sr.Output.MergeResult; mr != nil {
			merged, ignored = mr.Map.Len(), len(mr.InvalidPaths)
		}
		if vr := sr.Output.ValidationResult; vr != nil {
			violations = vr.ErrorCount
			verdict = "accepted"
			if !vr.Valid {
				verdict = "rejected"
			}
		}
	}

	t.Logf("")
	t.Logf("  Input sets: %d merged entries, %d ignored paths, %s (%d violations) in %s",
		merged, ignored, verdict, violations, formatDuration(result.Duration))

	if !result.Success && result.FailedStep != "" {
		t.Logf("  Broke at %s: %v", result.FailedStep, result.Error)
	}
}

// PrintScenarioHeader prints the header for a scenario.
func PrintScenarioHeader(t *testing.T, scenario *Scenario) {
	t.Helper()

	t.Logf("")
	t.Logf("Scenario: %s", scenario.Name)
	if scenario.Description != "" {
		t.Logf("  %s", scenario.Description)
	}
	t.Logf("  Base: %s", scenario.Base)
	if n := len(scenario.Overrides); n > 0 {
		t.Logf("  Overrides: %d", n)
	}
	t.Logf("")
}

// stepTally counts executed steps of one kind across scenarios.
type stepTally struct {
	run, failed int
}

// PrintSummary prints the outcome of all scenarios, broken down by step
// kind, with the failing scenarios listed last.
func PrintSummary(t *testing.T, results []*PipelineResult, duration time.Duration) {
	t.Helper()

	tallies := make(map[string]*stepTally, len(stepKinds))
	for _, name := range stepKinds {
		tallies[name] = &stepTally{}
	}
	var failures []string
	var overrides, skipped int
	for _, r := range results {
		if r.Scenario.Skip != "" {
			skipped++
			continue
		}
		overrides += len(r.Scenario.Overrides)
		for _, sr := range r.StepResults {
			tally, ok := tallies[sr.StepName]
			if !ok {
				continue
			}
			tally.run++
			if !sr.Success {
				tally.failed++
			}
		}
		if !r.Success {
			failures = append(failures, fmt.Sprintf("%s (%s): %v", r.Scenario.Name, r.FailedStep, r.Error))
		}
	}

	rule := strings.Repeat("-", 60)
	t.Logf("")
	t.Logf("%s", rule)
	t.Logf("input set scenarios: %d run, %d failed, %d skipped, %d input sets, %s",
		len(results)-skipped, len(failures), skipped, overrides, formatDuration(duration))
	for _, name := range stepKinds {
		tally := tallies[name]
		t.Logf("  %-9s %3d run %3d failed", name, tally.run, tally.failed)
	}
	t.Logf("%s", rule)
	for _, f := range failures {
		t.Logf("  FAILED %s", f)
	}
}

// formatDuration rounds d to a precision that suits its magnitude.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(100 * time.Microsecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

// DumpDocument logs doc as YAML under a header naming the step.
func DumpDocument(t *testing.T, stepName string, doc *tree.Node) {
	t.Helper()

	if doc == nil {
		t.Logf("      --- %s output: <empty> ---", stepName)
		return
	}
	data, err := parser.MarshalYAML(doc)
	if err != nil {
		t.Logf("      --- %s output: %v ---", stepName, err)
		return
	}
	t.Logf("      --- %s output ---\n%s", stepName, data)
}
