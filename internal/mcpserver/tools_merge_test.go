package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/inputsets/internal/testutil"
)

func TestMergeOverridesTool(t *testing.T) {
	input := mergeInput{
		Base:      docInput{Content: testutil.PipelineYAML},
		Overrides: []docInput{{Content: testutil.InputSetYAML}},
	}
	result, output, err := handleMergeOverrides(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 1, output.OverrideCount)
	assert.Empty(t, output.InvalidPaths)
	assert.NotContains(t, output.Document, "<+input>")
	assert.Contains(t, output.Document, "timeout: 10m")
	assert.Contains(t, output.Document, "image: golang:1.24")
	assert.Contains(t, output.Document, "value: eu-west-1")
}

func TestMergeOverridesTool_AppendValidator(t *testing.T) {
	enabled := true
	input := mergeInput{
		Base:            docInput{Content: testutil.PipelineYAML},
		Overrides:       []docInput{{Content: testutil.InputSetYAML}},
		AppendValidator: &enabled,
	}
	_, output, err := handleMergeOverrides(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Contains(t, output.Document, "eu-west-1.allowedValues(us-east-1,eu-west-1)")
}

func TestMergeOverridesTool_InvalidPaths(t *testing.T) {
	input := mergeInput{
		Base: docInput{Content: testutil.PipelineYAML},
		Overrides: []docInput{
			{Content: "pipeline:\n  name: renamed\n  timeout: 5m\n"},
			{Content: "pipeline:\n  timeout: 7m\n"},
		},
	}
	_, output, err := handleMergeOverrides(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 2, output.OverrideCount)
	assert.Equal(t, []string{"pipeline.name"}, output.InvalidPaths)
	assert.Contains(t, output.Document, "name: deploy-service")
	assert.Contains(t, output.Document, "timeout: 7m")
}

func TestMergeOverridesTool_Scope(t *testing.T) {
	input := mergeInput{
		Base:      docInput{Content: testutil.PipelineYAML},
		Overrides: []docInput{{Content: testutil.InputSetYAML}},
		Scope:     []string{"deploy_eu"},
		Format:    "json",
	}
	_, output, err := handleMergeOverrides(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Contains(t, output.Document, `"deploy_eu"`)
	assert.NotContains(t, output.Document, `"build"`)
	assert.NotContains(t, output.Document, `"deploy_us"`)
}

func TestMergeOverridesTool_Errors(t *testing.T) {
	tooMany := make([]docInput, cfg.MaxOverrides+1)
	for i := range tooMany {
		tooMany[i] = docInput{Content: "a: 1\n"}
	}

	tests := []struct {
		name    string
		input   mergeInput
		message string
	}{
		{
			name:    "too many overrides",
			input:   mergeInput{Base: docInput{Content: "a: 1\n"}, Overrides: tooMany},
			message: "too many overrides",
		},
		{
			name:    "missing base",
			input:   mergeInput{Overrides: []docInput{{Content: "a: 1\n"}}},
			message: "base:",
		},
		{
			name:    "bad override",
			input:   mergeInput{Base: docInput{Content: "a: 1\n"}, Overrides: []docInput{{}}},
			message: "override 1:",
		},
		{
			name: "unknown scope mode",
			input: mergeInput{
				Base:      docInput{Content: "a: 1\n"},
				Scope:     []string{"x"},
				ScopeMode: "sometimes",
			},
			message: "unknown mode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleMergeOverrides(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.message)
		})
	}
}
