// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/inputsets/tree"
)

// PipelineYAML is a pipeline with runtime inputs in plain fields, in a
// variable list, in a step and in both branches of a parallel group.
const PipelineYAML = `pipeline:
  name: deploy-service
  identifier: deploy_service
  projectIdentifier: payments
  timeout: <+input>
  variables:
    - name: region
      type: String
      value: <+input>.allowedValues(us-east-1,eu-west-1)
    - name: replicas
      type: Number
      value: 3
  stages:
    - stage:
        identifier: build
        name: Build
        type: CI
        spec:
          execution:
            steps:
              - step:
                  identifier: compile
                  type: Run
                  spec:
                    command: make build
                    image: <+input>
    - parallel:
        - stage:
            identifier: deploy_eu
            name: Deploy EU
            type: Deployment
            spec:
              service: <+input>
              replicas: 2
        - stage:
            identifier: deploy_us
            name: Deploy US
            type: Deployment
            spec:
              service: <+input>.regex(^svc-.*$)
              replicas: 2
`

// InputSetYAML supplies values for every runtime input of PipelineYAML.
const InputSetYAML = `pipeline:
  identifier: deploy_service
  timeout: 10m
  variables:
    - name: region
      type: String
      value: eu-west-1
  stages:
    - stage:
        identifier: build
        type: CI
        spec:
          execution:
            steps:
              - step:
                  identifier: compile
                  type: Run
                  spec:
                    image: golang:1.24
    - parallel:
        - stage:
            identifier: deploy_eu
            type: Deployment
            spec:
              service: svc-payments
        - stage:
            identifier: deploy_us
            type: Deployment
            spec:
              service: svc-payments
`

// MustParseYAML parses src into a tree, failing the test on error.
func MustParseYAML(t testing.TB, src string) *tree.Node {
	t.Helper()

	var n tree.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		t.Fatalf("Failed to parse YAML fixture: %v", err)
	}
	return &n
}

// NewPipeline returns a fresh tree of PipelineYAML.
func NewPipeline(t testing.TB) *tree.Node {
	t.Helper()
	return MustParseYAML(t, PipelineYAML)
}

// NewInputSet returns a fresh tree of InputSetYAML.
func NewInputSet(t testing.TB) *tree.Node {
	t.Helper()
	return MustParseYAML(t, InputSetYAML)
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t testing.TB, doc *tree.Node) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return writeTemp(t, "test.yaml", data)
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t testing.TB, doc *tree.Node) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, "test.json", data)
}

// WriteTempFile writes raw content to a temporary file with the given name.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()
	return writeTemp(t, name, []byte(content))
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
