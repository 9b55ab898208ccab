package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/template"
)

type listInputsInput struct {
	Document docInput `json:"document"         jsonschema:"The pipeline document"`
	Offset   int      `json:"offset,omitempty" jsonschema:"Skip the first N inputs (for pagination)"`
	Limit    int      `json:"limit,omitempty"  jsonschema:"Maximum number of inputs to return (default 100)"`
}

type runtimeInput struct {
	Path       string   `json:"path"`
	Expression string   `json:"expression"`
	Raw        string   `json:"raw"`
	Validators []string `json:"validators,omitempty"`
	Default    string   `json:"default,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type listInputsOutput struct {
	Total    int            `json:"total"`
	Returned int            `json:"returned"`
	Inputs   []runtimeInput `json:"inputs,omitempty"`
}

func handleListRuntimeInputs(_ context.Context, _ *mcp.CallToolRequest, input listInputsInput) (*mcp.CallToolResult, listInputsOutput, error) {
	parsed, err := input.Document.resolve()
	if err != nil {
		return errResult(err), listInputsOutput{}, nil
	}
	res, err := flatten.Flatten(parsed.Document,
		flatten.WithMaxDepth(cfg.MaxDepth),
		flatten.WithSourceName(parsed.SourcePath),
	)
	if err != nil {
		return errResult(err), listInputsOutput{}, nil
	}

	matcher := cfg.matcher()
	selected := template.Extract(res.Map, true, matcher)

	inputs := makeSlice[runtimeInput](selected.Len())
	for p, v := range selected.All() {
		item := runtimeInput{
			Path:       p.String(),
			Expression: p.Expression(),
			Raw:        v.Text(),
		}
		expr, err := matcher.Parse(v.Text())
		if err != nil {
			item.Error = err.Error()
			inputs = append(inputs, item)
			continue
		}
		for _, c := range expr.Validators {
			item.Validators = append(item.Validators, c.String())
		}
		if def, ok := expr.Default(); ok {
			item.Default = def
		}
		inputs = append(inputs, item)
	}

	page := paginate(inputs, input.Offset, input.Limit)
	return nil, listInputsOutput{
		Total:    len(inputs),
		Returned: len(page),
		Inputs:   page,
	}, nil
}
