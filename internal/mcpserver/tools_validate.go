package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/inputsets/template"
	"github.com/erraggy/inputsets/tree"
	"github.com/erraggy/inputsets/validator"
)

type validateInput struct {
	Template   docInput `json:"template"              jsonschema:"The pipeline, or its runtime-input template"`
	Override   docInput `json:"override"              jsonschema:"The input set to check"`
	NoWarnings *bool    `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Offset     int      `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int      `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Path       string `json:"path"`
	Expression string `json:"expression,omitempty"`
	Message    string `json:"message"`
	Value      string `json:"value,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	InvalidPaths []string        `json:"invalid_paths,omitempty"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidateOverrides(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	noWarnings := cfg.NoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	tmplDoc, err := input.Template.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	overDoc, err := input.Override.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	// A full pipeline is reduced to its template first; a template is
	// returned unchanged.
	matcher := cfg.matcher()
	tmpl, err := template.CreateTemplate(tmplDoc.Document,
		template.WithMatcher(matcher),
		template.WithMaxDepth(cfg.MaxDepth),
	)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	if tmpl == nil {
		tmpl = tree.Object()
	}

	result, err := validator.ValidateWithOptions(
		validator.WithTemplate(tmpl),
		validator.WithOverride(overDoc.Document),
		validator.WithMatcher(matcher),
		validator.WithIncludeWarnings(!noWarnings),
		validator.WithSourceName(overDoc.SourcePath),
	)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        result.Valid,
		InvalidPaths: result.InvalidPaths,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
	}
	output.Errors = makeSlice[validateIssue](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, toIssue(e))
	}
	output.Warnings = makeSlice[validateIssue](len(result.Warnings))
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, toIssue(w))
	}

	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

func toIssue(e validator.ValidationError) validateIssue {
	return validateIssue{
		Path:       e.Path,
		Expression: e.Expression,
		Message:    e.Message,
		Value:      e.Value,
	}
}
