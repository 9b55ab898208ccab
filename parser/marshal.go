package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/inputsets/tree"
)

// MarshalYAML renders doc as YAML with two-space indentation. A nil document
// renders as an empty document.
func MarshalYAML(doc *tree.Node) ([]byte, error) {
	if doc == nil {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	enc.DefaultSeqIndent()
	if err := enc.Encode(doc.ToYAML()); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON renders doc as indented JSON followed by a newline. A nil
// document renders as an empty object.
func MarshalJSON(doc *tree.Node) ([]byte, error) {
	if doc == nil {
		return []byte("{}\n"), nil
	}
	compact, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("parser: failed to marshal JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Marshal renders doc in format. JSONC output is plain JSON; unknown formats
// render as YAML.
func Marshal(doc *tree.Node, format SourceFormat) ([]byte, error) {
	switch format {
	case SourceFormatJSON, SourceFormatJSONC:
		return MarshalJSON(doc)
	default:
		return MarshalYAML(doc)
	}
}

// ParseFormat maps a user supplied format name to a SourceFormat.
func ParseFormat(name string) (SourceFormat, error) {
	switch name {
	case "yaml", "yml":
		return SourceFormatYAML, nil
	case "json":
		return SourceFormatJSON, nil
	default:
		return SourceFormatUnknown, fmt.Errorf("parser: unsupported format %q (expected yaml or json)", name)
	}
}
