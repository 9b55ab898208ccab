//go:build integration

// Package integration provides integration tests for inputsets.
// These tests exercise template extraction, stripping, merging and
// validation end to end using declarative YAML scenarios.
//
// Run with: go test -tags=integration ./integration/... -v
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/inputsets/integration/harness"
	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/template"
)

// getIntegrationDir returns the absolute path to the integration directory.
func getIntegrationDir(t *testing.T) string {
	t.Helper()

	// This works whether running from repo root or integration directory
	wd, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	if filepath.Base(wd) == "integration" {
		return wd
	}

	integrationDir := filepath.Join(wd, "integration")
	if _, err := os.Stat(integrationDir); err == nil {
		return integrationDir
	}

	integrationDir = filepath.Join(filepath.Dir(wd), "integration")
	if _, err := os.Stat(integrationDir); err == nil {
		return integrationDir
	}

	require.Failf(t, "could not find integration directory", "from %s", wd)
	return ""
}

var bases = []struct {
	file   string
	format parser.SourceFormat
	inputs int
}{
	{"deploy-pipeline.yaml", parser.SourceFormatYAML, 5},
	{"release-pipeline.jsonc", parser.SourceFormatJSONC, 5},
}

// TestBasesHaveRuntimeInputs verifies that every base fixture parses and
// carries the expected number of runtime inputs.
func TestBasesHaveRuntimeInputs(t *testing.T) {
	basesDir := filepath.Join(getIntegrationDir(t), "bases")

	for _, base := range bases {
		t.Run(base.file, func(t *testing.T) {
			result, err := parser.ParseWithOptions(
				parser.WithFilePath(filepath.Join(basesDir, base.file)),
			)
			require.NoError(t, err, "failed to parse %s", base.file)
			require.NotNil(t, result.Document)
			require.Equal(t, base.format, result.SourceFormat)

			harness.AssertInputCount(t, result.Document, base.inputs)

			tmpl, err := template.CreateTemplate(result.Document)
			require.NoError(t, err)
			harness.AssertInputCount(t, tmpl, base.inputs)

			t.Logf("  Format: %s", result.SourceFormat)
			t.Logf("  Size: %d bytes", result.SourceSize)
		})
	}
}

// TestStripRemovesRuntimeInputs verifies that no placeholder survives
// stripping.
func TestStripRemovesRuntimeInputs(t *testing.T) {
	basesDir := filepath.Join(getIntegrationDir(t), "bases")

	for _, base := range bases {
		t.Run(base.file, func(t *testing.T) {
			result, err := parser.ParseWithOptions(
				parser.WithFilePath(filepath.Join(basesDir, base.file)),
			)
			require.NoError(t, err)

			stripped, err := template.StripRuntimeInputs(result.Document)
			require.NoError(t, err)
			require.NotNil(t, stripped)
			harness.AssertNoRuntimeInputs(t, stripped)
		})
	}
}

// TestScenarios runs all scenarios from the scenarios directory.
func TestScenarios(t *testing.T) {
	integrationDir := getIntegrationDir(t)
	scenariosDir := filepath.Join(integrationDir, "scenarios")
	basesDir := filepath.Join(integrationDir, "bases")

	scenarios, err := harness.LoadAllScenarios(scenariosDir)
	require.NoError(t, err, "failed to load scenarios")

	if len(scenarios) == 0 {
		t.Skip("no scenarios found")
	}

	t.Logf("Found %d scenarios", len(scenarios))

	var results []*harness.PipelineResult
	start := time.Now()

	for _, scenario := range scenarios {
		testName := harness.ScenarioTestName(scenario, scenariosDir)
		t.Run(testName, func(t *testing.T) {
			harness.PrintScenarioHeader(t, scenario)
			result := harness.RunScenario(t, scenario, basesDir)
			results = append(results, result)
			harness.PrintPipelineResult(t, result)

			if scenario.ExpectedFailure == "" {
				require.True(t, result.Success, "scenario failed: %v", result.Error)
			}
		})
	}

	harness.PrintSummary(t, results, time.Since(start))
}
