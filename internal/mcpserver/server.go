// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the runtime-input operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/tree"
)

const serverInstructions = `inputsets MCP server: extracts runtime-input templates from pipeline documents, strips runtime inputs, merges input sets into pipelines, and validates input sets against templates.

A runtime input is a leaf whose value starts with the marker (default "<+input>"), optionally followed by validator clauses such as .allowedValues(a,b) or .regex(^v.*$). Paths are shown with list elements addressed by identity, e.g. pipeline.stages.stage[identifier:build].spec.image.

Configuration: defaults are configurable via INPUTSETS_* environment variables set in your MCP client config.

Key settings:
- INPUTSETS_MARKER (default: <+input>) - placeholder marker token
- INPUTSETS_APPEND_VALIDATOR (default: false) - keep validator clauses on merged values
- INPUTSETS_NO_WARNINGS (default: false) - suppress validation warnings
- INPUTSETS_MAX_OVERRIDES (default: 20) - maximum input sets per merge
- INPUTSETS_MAX_DEPTH (default: 1000) - maximum document nesting depth
- INPUTSETS_CACHE_ENABLED (default: true) - disable document caching entirely

Caching: parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "inputsets", Version: inputsets.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_template",
		Description: "Extract the runtime-input template of a pipeline document: only the leaves whose value is a runtime input placeholder, plus the identity and type fields that locate them. Returns the template document and the paths of its inputs. An input set for the pipeline has the same shape as the template.",
	}, handleCreateTemplate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "strip_runtime_inputs",
		Description: "Remove every runtime input placeholder from a pipeline document, keeping all concrete values. Branches left empty are dropped.",
	}, handleStripRuntimeInputs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_runtime_inputs",
		Description: "List the runtime inputs of a pipeline document with their paths, expression form, validator clauses (allowedValues, regex) and default value. Use offset/limit to paginate.",
	}, handleListRuntimeInputs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_overrides",
		Description: "Merge one or more input sets into a pipeline document. Only runtime inputs can be overridden; values at every other path are kept and the ignored override paths are reported in invalid_paths. Later input sets win. Use scope to keep only some list branches (for example selected stage identifiers). Set append_validator to keep validator clauses on merged values. The default for append_validator is configurable via INPUTSETS_APPEND_VALIDATOR.",
	}, handleMergeOverrides)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_overrides",
		Description: "Check an input set against a pipeline (or its template). Reports override paths that are not runtime inputs, identity or type values that differ from the template, and values that violate allowedValues or regex validators. Use offset/limit to paginate through results.",
	}, handleValidateOverrides)
}

// renderDocument renders doc in the requested output format (default yaml).
func renderDocument(doc *tree.Node, format string) (string, error) {
	if format == "" {
		format = string(parser.SourceFormatYAML)
	}
	f, err := parser.ParseFormat(format)
	if err != nil {
		return "", err
	}
	data, err := parser.Marshal(doc, f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.DefaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
