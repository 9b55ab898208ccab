//go:build integration

package harness

import (
	"testing"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/template"
	"github.com/erraggy/inputsets/tree"
	"github.com/erraggy/inputsets/validator"
)

// AssertValid asserts that a validation result accepts the override.
func AssertValid(t *testing.T, result *validator.ValidationResult) {
	t.Helper()
	if !result.Valid {
		t.Errorf("expected valid override, got %d errors:", result.ErrorCount)
		for _, e := range result.Errors {
			t.Errorf("  - %s", e.String())
		}
	}
}

// AssertInvalid asserts that a validation result rejects the override.
func AssertInvalid(t *testing.T, result *validator.ValidationResult) {
	t.Helper()
	if result.Valid {
		t.Error("expected invalid override, but validation passed")
	}
}

// AssertErrorCount asserts the exact number of validation errors.
func AssertErrorCount(t *testing.T, result *validator.ValidationResult, expected int) {
	t.Helper()
	if result.ErrorCount != expected {
		t.Errorf("expected %d errors, got %d", expected, result.ErrorCount)
		for _, e := range result.Errors {
			t.Logf("  - %s", e.String())
		}
	}
}

// AssertWarningCount asserts the exact number of validation warnings.
func AssertWarningCount(t *testing.T, result *validator.ValidationResult, expected int) {
	t.Helper()
	if result.WarningCount != expected {
		t.Errorf("expected %d warnings, got %d", expected, result.WarningCount)
		for _, w := range result.Warnings {
			t.Logf("  - %s", w.String())
		}
	}
}

// AssertInputCount asserts the number of runtime inputs in a document.
func AssertInputCount(t *testing.T, doc *tree.Node, expected int) {
	t.Helper()
	res, err := flatten.Flatten(doc)
	if err != nil {
		t.Errorf("failed to flatten document: %v", err)
		return
	}
	inputs := template.Extract(res.Map, true, placeholder.Default())
	if inputs.Len() != expected {
		t.Errorf("expected %d runtime inputs, got %d", expected, inputs.Len())
		for p := range inputs.All() {
			t.Logf("  - %s", p)
		}
	}
}

// AssertNoRuntimeInputs asserts that no leaf of doc is a runtime input.
func AssertNoRuntimeInputs(t *testing.T, doc *tree.Node) {
	t.Helper()
	if doc == nil {
		return
	}
	res, err := flatten.Flatten(doc)
	if err != nil {
		t.Errorf("failed to flatten document: %v", err)
		return
	}
	for p, v := range res.Map.All() {
		if placeholder.IsRuntimeInput(placeholder.Default(), v) {
			t.Errorf("unexpected runtime input at %s: %s", p, v.Text())
		}
	}
}
