package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/internal/cliutil"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/template"
	"github.com/erraggy/inputsets/tree"
	"github.com/erraggy/inputsets/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Template   string
	Strict     bool
	NoWarnings bool
	Quiet      bool
	Format     string
	Marker     string
	Verbose    bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*pflag.FlagSet, *ValidateFlags) {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &ValidateFlags{}

	fs.StringVarP(&flags.Template, "template", "t", "", "pipeline document or its runtime-input template (required)")
	fs.BoolVar(&flags.Strict, "strict", false, "treat warnings as failures")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Marker, "marker", placeholder.DefaultMarker, "runtime input marker token")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	fs.Usage = func() {
		out := fs.Output()
		Writef(out, "Usage: inputsets validate --template <file|url> [flags] <override|->\n\n")
		Writef(out, "Check an input set against a pipeline or its template. Reports override paths\n")
		Writef(out, "that are not runtime inputs, type values that differ from the template, and\n")
		Writef(out, "values that violate allowedValues or regex validators.\n\n")
		Writef(out, "Flags:\n")
		fs.PrintDefaults()
		Writef(out, "\nOutput Formats:\n")
		Writef(out, "  text (default)  Human-readable text output\n")
		Writef(out, "  json            JSON format for programmatic processing\n")
		Writef(out, "  yaml            YAML format for programmatic processing\n")
		Writef(out, "\nExamples:\n")
		Writef(out, "  inputsets validate --template pipeline.yaml inputs.yaml\n")
		Writef(out, "  inputsets validate -t pipeline.yaml --format json inputs.yaml | jq '.valid'\n")
		Writef(out, "  cat inputs.yaml | inputsets validate -t pipeline.yaml -q -\n")
		Writef(out, "\nExit Codes:\n")
		Writef(out, "  0    Validation successful\n")
		Writef(out, "  1    Validation failed with errors (or warnings with --strict)\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Template == "" {
		fs.Usage()
		return fmt.Errorf("validate command requires --template")
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one override file path, URL, or '-' for stdin")
	}

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	overridePath := fs.Arg(0)

	startTime := time.Now()
	logger := NewLogger(flags.Verbose)
	tmplDoc, err := LoadDocument(flags.Template, logger)
	if err != nil {
		return err
	}
	overDoc, err := LoadDocument(overridePath, logger)
	if err != nil {
		return err
	}

	matcher := placeholder.Grammar{Marker: flags.Marker}
	tmpl, err := template.CreateTemplate(tmplDoc.Document,
		template.WithMatcher(matcher),
		template.WithLogger(logger),
		template.WithSourceName(tmplDoc.SourcePath),
	)
	if err != nil {
		return err
	}
	if tmpl == nil {
		tmpl = tree.Object()
	}

	result, err := validator.ValidateWithOptions(
		validator.WithTemplate(tmpl),
		validator.WithOverride(overDoc.Document),
		validator.WithMatcher(matcher),
		validator.WithIncludeWarnings(!flags.NoWarnings),
		validator.WithLogger(logger),
		validator.WithSourceName(FormatDocPath(overridePath)),
	)
	if err != nil {
		return fmt.Errorf("validating %s: %w", FormatDocPath(overridePath), err)
	}
	totalTime := time.Since(startTime)

	failed := !result.Valid || (flags.Strict && result.WarningCount > 0)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
		if failed {
			return ErrCheckFailed
		}
		return nil
	}

	if !flags.Quiet {
		Writef(stderr, "Input Set Validator\n")
		Writef(stderr, "===================\n\n")
		Writef(stderr, "inputsets version: %s\n", inputsets.Version())
		Writef(stderr, "Template: %s\n", FormatDocPath(flags.Template))
		Writef(stderr, "Input Set: %s\n", FormatDocPath(overridePath))
		Writef(stderr, "Total Time: %v\n\n", totalTime)

		if cliutil.WriteSection(stderr, "Errors", cliutil.Lines(result.Errors)) {
			Writef(stderr, "\n")
		}
		if cliutil.WriteSection(stderr, "Warnings", cliutil.Lines(result.Warnings)) {
			Writef(stderr, "\n")
		}
	}

	if failed {
		Writef(stdout, "✗ Validation failed: %d error(s), %d warning(s)\n", result.ErrorCount, result.WarningCount)
		return ErrCheckFailed
	}
	if result.WarningCount > 0 {
		Writef(stdout, "✓ Validation passed with %d warning(s)\n", result.WarningCount)
	} else {
		Writef(stdout, "✓ Validation passed\n")
	}
	return nil
}
