package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/inputsets/internal/testutil"
)

func TestCreateTemplateTool(t *testing.T) {
	input := templateInput{Document: docInput{Content: testutil.PipelineYAML}}
	result, output, err := handleCreateTemplate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, output.Empty)
	assert.Equal(t, 5, output.InputCount)
	assert.Equal(t, []string{
		"pipeline.timeout",
		"pipeline.variables.[name:region].value",
		"pipeline.stages.stage[identifier:build].spec.execution.steps.step[identifier:compile].spec.image",
		"pipeline.stages.PARALLEL.stage[identifier:deploy_eu].spec.service",
		"pipeline.stages.PARALLEL.stage[identifier:deploy_us].spec.service",
	}, output.Inputs)
	assert.Contains(t, output.Document, "timeout: <+input>")
	assert.NotContains(t, output.Document, "replicas")
}

func TestCreateTemplateTool_NoInputs(t *testing.T) {
	input := templateInput{Document: docInput{Content: "pipeline:\n  name: fixed\n"}}
	_, output, err := handleCreateTemplate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, output.Empty)
	assert.Zero(t, output.InputCount)
	assert.Equal(t, "{}\n", output.Document)
}

func TestCreateTemplateTool_JSON(t *testing.T) {
	input := templateInput{
		Document: docInput{Content: "pipeline:\n  timeout: <+input>\n"},
		Format:   "json",
	}
	_, output, err := handleCreateTemplate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pipeline":{"timeout":"<+input>"}}`, output.Document)
}

func TestStripRuntimeInputsTool(t *testing.T) {
	input := templateInput{Document: docInput{Content: testutil.PipelineYAML}}
	result, output, err := handleStripRuntimeInputs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, output.Empty)
	assert.Empty(t, output.Inputs)
	assert.NotContains(t, output.Document, "<+input>")
	assert.Contains(t, output.Document, "command: make build")
}

func TestTemplateTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input templateInput
	}{
		{"no document", templateInput{}},
		{"unparsable", templateInput{Document: docInput{Content: "a: [1, 2"}}},
		{"bad format", templateInput{Document: docInput{Content: "a: 1\n"}, Format: "xml"}},
		{"duplicate identity", templateInput{Document: docInput{Content: `
stages:
  - stage:
      identifier: a
  - stage:
      identifier: a
`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleCreateTemplate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
