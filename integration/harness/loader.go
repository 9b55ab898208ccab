//go:build integration

package harness

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"
)

// LoadScenario loads a single scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to read scenario file %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("harness: failed to parse scenario file %s: %w", path, err)
	}

	scenario.filePath = path

	// Validate the scenario
	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("harness: invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadAllScenarios loads all scenarios from a directory recursively.
func LoadAllScenarios(dir string) ([]*Scenario, error) {
	var scenarios []*Scenario

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// Only process .yaml and .yml files
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		scenario, err := LoadScenario(path)
		if err != nil {
			return err
		}

		scenarios = append(scenarios, scenario)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("harness: failed to load scenarios from %s: %w", dir, err)
	}

	return scenarios, nil
}

// ValidateScenario validates a scenario's structure and required fields.
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario must have a name")
	}

	if len(s.Pipeline) == 0 {
		return fmt.Errorf("scenario '%s' must have at least one pipeline step", s.Name)
	}

	if s.Base == "" {
		return fmt.Errorf("scenario '%s' has no base pipeline", s.Name)
	}

	for i, step := range s.Pipeline {
		if err := validateStep(&step, i); err != nil {
			return fmt.Errorf("scenario '%s': %w", s.Name, err)
		}
		if step.Name == "validate" && max(step.Config.Override, 1) > len(s.Overrides) {
			return fmt.Errorf("scenario '%s': step %d validates override %d but only %d are defined",
				s.Name, i+1, max(step.Config.Override, 1), len(s.Overrides))
		}
	}

	for i, doc := range s.Overrides {
		if doc == nil || !doc.IsObject() {
			return fmt.Errorf("scenario '%s': override %d must be a mapping", s.Name, i+1)
		}
	}

	return nil
}

// stepKinds are the step names a scenario pipeline may use, in report order.
var stepKinds = []string{"template", "strip", "merge", "validate"}

// validateStep validates a single pipeline step.
func validateStep(step *Step, index int) error {
	if step.Name == "" {
		return fmt.Errorf("step %d must have a name", index+1)
	}

	if !slices.Contains(stepKinds, step.Name) {
		return fmt.Errorf("step %d: unknown step type '%s'", index+1, step.Name)
	}

	if step.Config.Override < 0 {
		return fmt.Errorf("step %d (%s): override index must be positive", index+1, step.Name)
	}

	// Validate expect value if specified
	if step.Expect != "" {
		validExpects := map[string]bool{
			"valid":   true,
			"invalid": true,
			"error":   true,
			"success": true,
		}
		if !validExpects[step.Expect] {
			return fmt.Errorf("step %d (%s): invalid expect value '%s' (must be valid, invalid, error, or success)",
				index+1, step.Name, step.Expect)
		}
	}

	return nil
}

// ScenarioPath returns the relative path of the scenario file for display.
func ScenarioPath(s *Scenario, baseDir string) string {
	if s.filePath == "" {
		return s.Name
	}
	rel, err := filepath.Rel(baseDir, s.filePath)
	if err != nil {
		return s.filePath
	}
	return rel
}

// ScenarioTestName returns a test-friendly name for the scenario.
func ScenarioTestName(s *Scenario, baseDir string) string {
	// Use the relative path without extension as the test name
	path := ScenarioPath(s, baseDir)
	// Remove .yaml/.yml extension
	path = strings.TrimSuffix(path, ".yaml")
	path = strings.TrimSuffix(path, ".yml")
	// Replace path separators with /
	path = strings.ReplaceAll(path, string(filepath.Separator), "/")
	return path
}
