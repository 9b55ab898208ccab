package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/inputsets/merger"
	"github.com/erraggy/inputsets/scope"
	"github.com/erraggy/inputsets/tree"
)

type mergeInput struct {
	Base            docInput   `json:"base"                       jsonschema:"The pipeline document holding runtime inputs"`
	Overrides       []docInput `json:"overrides"                  jsonschema:"Input sets to merge, in order; later ones win"`
	AppendValidator *bool      `json:"append_validator,omitempty" jsonschema:"Keep validator clauses on merged values, e.g. eu.allowedValues(eu,us)"`
	Scope           []string   `json:"scope,omitempty"            jsonschema:"Keep only list branches with these identities (e.g. stage identifiers)"`
	ScopeMode       string     `json:"scope_mode,omitempty"       jsonschema:"outermost (default): the outermost identity decides; every: all identities on a path must be in scope"`
	Format          string     `json:"format,omitempty"           jsonschema:"Output format: yaml (default) or json"`
}

type mergeOutput struct {
	OverrideCount int      `json:"override_count"`
	InvalidPaths  []string `json:"invalid_paths,omitempty"`
	Document      string   `json:"document"`
}

func handleMergeOverrides(_ context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	if len(input.Overrides) > cfg.MaxOverrides {
		return errResult(fmt.Errorf("too many overrides: %d (maximum %d); set INPUTSETS_MAX_OVERRIDES to increase",
			len(input.Overrides), cfg.MaxOverrides)), mergeOutput{}, nil
	}

	appendValidator := cfg.AppendValidator
	if input.AppendValidator != nil {
		appendValidator = *input.AppendValidator
	}
	opts := []merger.Option{
		merger.WithAppendValidator(appendValidator),
		merger.WithMatcher(cfg.matcher()),
		merger.WithMaxDepth(cfg.MaxDepth),
	}
	if len(input.Scope) > 0 {
		mode, err := scope.ParseMode(input.ScopeMode)
		if err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		opts = append(opts, merger.WithScope(input.Scope...), merger.WithScopeMode(mode))
	}

	base, err := input.Base.resolve()
	if err != nil {
		return errResult(fmt.Errorf("base: %w", err)), mergeOutput{}, nil
	}
	overrides := make([]*tree.Node, 0, len(input.Overrides))
	for i, o := range input.Overrides {
		parsed, err := o.resolve()
		if err != nil {
			return errResult(fmt.Errorf("override %d: %w", i+1, err)), mergeOutput{}, nil
		}
		overrides = append(overrides, parsed.Document)
	}

	result, err := merger.MergeOverrides(base.Document, overrides, opts...)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	rendered, err := renderDocument(result.Document, input.Format)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	return nil, mergeOutput{
		OverrideCount: len(overrides),
		InvalidPaths:  result.InvalidPathStrings(),
		Document:      rendered,
	}, nil
}
