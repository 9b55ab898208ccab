// Package commands provides CLI command handlers for inputsets.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/internal/cliutil"
	"github.com/erraggy/inputsets/internal/fileutil"
	"github.com/erraggy/inputsets/internal/pathutil"
	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/tree"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrCheckFailed is returned when a command ran to completion but found
// problems that should fail the invocation (validation errors, or invalid
// override paths under --strict). The details have already been reported.
var ErrCheckFailed = errors.New("check failed")

// Command output streams. Tests replace them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateDocumentFormat validates a document output format (yaml or json).
func ValidateDocumentFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatYAML, FormatJSON)
	}
	return nil
}

// OutputStructured writes data to stdout in the specified format (json or yaml).
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = marshalIndentJSON(data)
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", bytes)
	return nil
}

// marshalIndentJSON is json.MarshalIndent without HTML escaping, so
// placeholders like "<+input>" are printed as written.
func marshalIndentJSON(data any) ([]byte, error) {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return []byte(strings.TrimSuffix(buf.String(), "\n")), nil
}

// LoadDocument parses the document at path, which may be a file, a URL or
// StdinFilePath.
func LoadDocument(path string, logger inputsets.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if path == StdinFilePath {
		opts = append(opts, parser.WithReader(stdin), parser.WithSourceName("stdin"))
	} else {
		opts = append(opts, parser.WithFilePath(path))
	}
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatDocPath(path), err)
	}
	return result, nil
}

// WriteDocument renders doc in format and writes it to outputPath, or to
// stdout when outputPath is empty. A nil document renders as an empty object.
func WriteDocument(doc *tree.Node, format, outputPath string) error {
	f, err := parser.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := parser.Marshal(doc, f)
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}

	if outputPath == "" {
		Writef(stdout, "%s", data)
		return nil
	}

	cleaned, err := pathutil.SanitizeOutputPath(outputPath)
	if err != nil {
		return err
	}
	return fileutil.WriteFile(cleaned, data)
}

// ValidateOutputPath checks that the output path does not name an input file.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	if outputPath == "" {
		return nil
	}
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return nil
}

// FormatDocPath returns a display-friendly path for a document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatDocPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// NewLogger returns the diagnostic logger for a command: a text handler on
// stderr at debug level when verbose, otherwise warnings only.
func NewLogger(verbose bool) inputsets.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return inputsets.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}
