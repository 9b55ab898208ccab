package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/erraggy/inputsets/internal/cliutil"
	"github.com/erraggy/inputsets/merger"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/scope"
	"github.com/erraggy/inputsets/tree"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	Base            string
	Format          string
	Output          string
	AppendValidator bool
	Scope           []string
	ScopeMode       string
	Strict          bool
	Marker          string
	Quiet           bool
	Verbose         bool
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*pflag.FlagSet, *MergeFlags) {
	fs := pflag.NewFlagSet("merge", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &MergeFlags{}

	fs.StringVarP(&flags.Base, "base", "b", "", "pipeline document holding the runtime inputs (required)")
	fs.StringVarP(&flags.Format, "format", "f", FormatYAML, "output format: yaml or json")
	fs.StringVarP(&flags.Output, "output", "o", "", "write the merged document to this file instead of stdout")
	fs.BoolVar(&flags.AppendValidator, "append-validator", false, "keep validator clauses on merged values")
	fs.StringSliceVar(&flags.Scope, "scope", nil, "keep only list branches with these identities (comma separated)")
	fs.StringVar(&flags.ScopeMode, "scope-mode", scope.Outermost.String(), "scope matching: outermost or every")
	fs.BoolVar(&flags.Strict, "strict", false, "exit with status 1 when an override path is not a runtime input")
	fs.StringVar(&flags.Marker, "marker", placeholder.DefaultMarker, "runtime input marker token")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "do not report invalid override paths")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	fs.Usage = func() {
		out := fs.Output()
		Writef(out, "Usage: inputsets merge --base <file|url> [flags] <override>...\n\n")
		Writef(out, "Merge input sets into a pipeline document. Only runtime inputs are replaced;\n")
		Writef(out, "override values at any other path are ignored and reported on stderr.\n")
		Writef(out, "Later input sets win.\n\n")
		Writef(out, "Flags:\n")
		fs.PrintDefaults()
		Writef(out, "\nExamples:\n")
		Writef(out, "  inputsets merge --base pipeline.yaml inputs.yaml\n")
		Writef(out, "  inputsets merge --base pipeline.yaml defaults.yaml prod.yaml -o merged.yaml\n")
		Writef(out, "  inputsets merge --base pipeline.yaml --scope build,deploy_eu inputs.yaml\n")
		Writef(out, "  cat inputs.yaml | inputsets merge --base pipeline.yaml --strict -\n")
		Writef(out, "\nExit Codes:\n")
		Writef(out, "  0    Merge successful\n")
		Writef(out, "  1    Error, or invalid override paths with --strict\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Base == "" {
		fs.Usage()
		return fmt.Errorf("merge command requires --base")
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("merge command requires at least one override file path, URL, or '-' for stdin")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	mode, err := scope.ParseMode(flags.ScopeMode)
	if err != nil {
		return err
	}
	inputs := append([]string{flags.Base}, fs.Args()...)
	if err := ValidateOutputPath(flags.Output, inputs); err != nil {
		return err
	}

	logger := NewLogger(flags.Verbose)
	base, err := LoadDocument(flags.Base, logger)
	if err != nil {
		return err
	}
	overrides := make([]*tree.Node, 0, fs.NArg())
	for _, path := range fs.Args() {
		parsed, err := LoadDocument(path, logger)
		if err != nil {
			return err
		}
		overrides = append(overrides, parsed.Document)
	}

	opts := []merger.Option{
		merger.WithAppendValidator(flags.AppendValidator),
		merger.WithMatcher(placeholder.Grammar{Marker: flags.Marker}),
		merger.WithLogger(logger),
	}
	if len(flags.Scope) > 0 {
		opts = append(opts, merger.WithScope(flags.Scope...), merger.WithScopeMode(mode))
	}

	result, err := merger.MergeOverrides(base.Document, overrides, opts...)
	if err != nil {
		return err
	}

	invalid := result.InvalidPathStrings()
	if !flags.Quiet {
		cliutil.WriteSection(stderr, "Ignored override paths", invalid)
	}

	if err := WriteDocument(result.Document, flags.Format, flags.Output); err != nil {
		return err
	}
	if flags.Strict && len(invalid) > 0 {
		return fmt.Errorf("%w: %d override path(s) are not runtime inputs", ErrCheckFailed, len(invalid))
	}
	return nil
}
