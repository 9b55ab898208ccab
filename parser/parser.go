package parser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/jsonc"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/inputerrors"
	"github.com/erraggy/inputsets/tree"
)

// DefaultMaxFileSize is the largest document accepted when no limit is set.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Parser loads documents into trees.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to inputsets.UserAgent() if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger inputsets.Logger
	// MaxFileSize is the maximum document size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: inputsets.UserAgent(),
	}
}

func (p *Parser) log() inputsets.Logger {
	return inputsets.OrNop(p.Logger)
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the encoding of a source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatJSONC indicates the source was JSON with comments or
	// trailing commas
	SourceFormatJSONC SourceFormat = "jsonc"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a parsed document and metadata about its source.
//
// Callers should treat Document as read-only: every operation of this module
// returns new trees instead of editing its inputs.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name
	// of the method used to parse it, e.g. "ParseBytes.yaml".
	SourcePath string
	// SourceFormat is the format of the source document
	SourceFormat SourceFormat
	// SourceSize is the size of the source document in bytes
	SourceSize int64
	// LoadTime is the time spent reading the source
	LoadTime time.Duration
	// Document is the parsed tree; nil for an empty document
	Document *tree.Node
}

// Parse parses a document from a local file or an http(s) URL.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	var data []byte
	var err error
	format := SourceFormatUnknown

	loadStart := time.Now()
	if isURL(path) {
		var contentType string
		data, contentType, err = p.fetchURL(path)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(path, contentType)
	} else {
		if err := p.checkFileSize(path); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(path)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parse(data, format, path)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses a document from an io.Reader.
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &inputerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      "reader exceeds the maximum document size",
		}
	}

	res, err := p.parse(data, SourceFormatUnknown, "")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + res.SourceFormat.extension()
	return res, nil
}

// ParseBytes parses a document from a byte slice.
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, &inputerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       int64(len(data)),
		}
	}
	res, err := p.parse(data, SourceFormatUnknown, "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + res.SourceFormat.extension()
	return res, nil
}

func (p *Parser) checkFileSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("parser: failed to read file: %w", err)
	}
	if limit := p.maxFileSize(); info.Size() > limit {
		return &inputerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       info.Size(),
			Message:      path,
		}
	}
	return nil
}

// parse decodes data. format is the format suggested by the source name and
// may be unknown; content detection fills it in.
func (p *Parser) parse(data []byte, format SourceFormat, sourcePath string) (*ParseResult, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	if format == SourceFormatJSON && hasJSONCSyntax(data) {
		format = SourceFormatJSONC
	}

	decoded := data
	if format == SourceFormatJSONC {
		decoded = jsonc.ToJSON(data)
	}

	doc, err := decode(decoded, sourcePath)
	if err != nil {
		return nil, err
	}

	p.log().Debug("parsed document",
		"source", sourcePath,
		"format", string(format),
		"bytes", len(data),
	)
	return &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Document:     doc,
	}, nil
}

// decode turns YAML or JSON text into a tree. JSON is decoded by the YAML
// decoder so both keep field order the same way.
func decode(data []byte, sourcePath string) (*tree.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &inputerrors.ParseError{Path: sourcePath, Message: "invalid document", Cause: err}
	}
	doc, err := tree.FromYAML(&root)
	if err != nil {
		return nil, &inputerrors.ParseError{Path: sourcePath, Message: "unsupported document structure", Cause: err}
	}
	return doc, nil
}

func (f SourceFormat) extension() string {
	switch f {
	case SourceFormatJSON, SourceFormatJSONC:
		return "json"
	default:
		return "yaml"
	}
}
