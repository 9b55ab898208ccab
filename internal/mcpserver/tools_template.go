package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/template"
)

type templateInput struct {
	Document docInput `json:"document"         jsonschema:"The pipeline document"`
	Format   string   `json:"format,omitempty" jsonschema:"Output format: yaml (default) or json"`
}

type templateOutput struct {
	Empty      bool     `json:"empty"`
	InputCount int      `json:"input_count"`
	Inputs     []string `json:"inputs,omitempty"`
	Document   string   `json:"document"`
}

func handleCreateTemplate(_ context.Context, _ *mcp.CallToolRequest, input templateInput) (*mcp.CallToolResult, templateOutput, error) {
	return runTemplate(input, true)
}

func handleStripRuntimeInputs(_ context.Context, _ *mcp.CallToolRequest, input templateInput) (*mcp.CallToolResult, templateOutput, error) {
	return runTemplate(input, false)
}

// runTemplate extracts the runtime inputs (keep=true) or everything else.
func runTemplate(input templateInput, keep bool) (*mcp.CallToolResult, templateOutput, error) {
	parsed, err := input.Document.resolve()
	if err != nil {
		return errResult(err), templateOutput{}, nil
	}

	res, err := flatten.Flatten(parsed.Document,
		flatten.WithMaxDepth(cfg.MaxDepth),
		flatten.WithSourceName(parsed.SourcePath),
	)
	if err != nil {
		return errResult(err), templateOutput{}, nil
	}
	selected := template.Extract(res.Map, keep, cfg.matcher())
	doc := flatten.Build(selected, res.Root)

	rendered, err := renderDocument(doc, input.Format)
	if err != nil {
		return errResult(err), templateOutput{}, nil
	}

	output := templateOutput{
		Empty:    doc == nil,
		Document: rendered,
	}
	if keep {
		output.InputCount = selected.Len()
		output.Inputs = makeSlice[string](selected.Len())
		for p := range selected.All() {
			output.Inputs = append(output.Inputs, p.String())
		}
	}
	return nil, output, nil
}
