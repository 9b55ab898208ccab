package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/template"
	"github.com/erraggy/inputsets/tree"
)

// TemplateFlags contains flags for the template and strip commands
type TemplateFlags struct {
	Format  string
	Output  string
	Marker  string
	Verbose bool
}

// SetupTemplateFlags creates and configures a FlagSet for the template or
// strip command (name selects the usage text).
func SetupTemplateFlags(name string) (*pflag.FlagSet, *TemplateFlags) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &TemplateFlags{}

	fs.StringVarP(&flags.Format, "format", "f", FormatYAML, "output format: yaml or json")
	fs.StringVarP(&flags.Output, "output", "o", "", "write the document to this file instead of stdout")
	fs.StringVar(&flags.Marker, "marker", placeholder.DefaultMarker, "runtime input marker token")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	fs.Usage = func() {
		out := fs.Output()
		if name == "strip" {
			Writef(out, "Usage: inputsets strip [flags] <file|url|->\n\n")
			Writef(out, "Print the document without its runtime inputs. Branches left empty are dropped.\n\n")
		} else {
			Writef(out, "Usage: inputsets template [flags] <file|url|->\n\n")
			Writef(out, "Print the runtime-input template of a pipeline: the runtime inputs plus the\n")
			Writef(out, "identity and type fields that locate them. An input set has the same shape.\n\n")
		}
		Writef(out, "Flags:\n")
		fs.PrintDefaults()
		Writef(out, "\nExamples:\n")
		Writef(out, "  inputsets %s pipeline.yaml\n", name)
		Writef(out, "  inputsets %s -f json -o out.json pipeline.yaml\n", name)
		Writef(out, "  cat pipeline.yaml | inputsets %s -\n", name)
	}

	return fs, flags
}

// HandleTemplate executes the template command
func HandleTemplate(args []string) error {
	return runTemplate("template", args, template.CreateTemplate)
}

// HandleStrip executes the strip command
func HandleStrip(args []string) error {
	return runTemplate("strip", args, template.StripRuntimeInputs)
}

type templateFunc = func(*tree.Node, ...template.Option) (*tree.Node, error)

func runTemplate(name string, args []string, run templateFunc) error {
	fs, flags := SetupTemplateFlags(name)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%s command requires exactly one file path, URL, or '-' for stdin", name)
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	docPath := fs.Arg(0)
	if err := ValidateOutputPath(flags.Output, []string{docPath}); err != nil {
		return err
	}

	logger := NewLogger(flags.Verbose)
	parsed, err := LoadDocument(docPath, logger)
	if err != nil {
		return err
	}

	doc, err := run(parsed.Document,
		template.WithMatcher(placeholder.Grammar{Marker: flags.Marker}),
		template.WithLogger(logger),
		template.WithSourceName(parsed.SourcePath),
	)
	if err != nil {
		return err
	}
	return WriteDocument(doc, flags.Format, flags.Output)
}
