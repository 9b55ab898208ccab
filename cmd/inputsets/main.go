package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/cmd/inputsets/commands"
	"github.com/erraggy/inputsets/internal/maputil"
	"github.com/erraggy/inputsets/internal/mcpserver"
)

// handlers maps each subcommand to its implementation.
var handlers = map[string]func(args []string) error{
	"template": commands.HandleTemplate,
	"strip":    commands.HandleStrip,
	"merge":    commands.HandleMerge,
	"validate": commands.HandleValidate,
	"mcp":      handleMCP,
	"version":  func([]string) error { printVersion(); return nil },
	"help":     func([]string) error { printUsage(); return nil },
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "-v", "--version":
		command = "version"
	case "-h", "--help":
		command = "help"
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		// A bare ErrCheckFailed has already been reported by the command.
		if err != commands.ErrCheckFailed { //nolint:errorlint // wrapped failures carry a message to print
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func handleMCP(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("mcp command takes no arguments (configure it with INPUTSETS_* environment variables)")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func printVersion() {
	fmt.Printf("inputsets v%s\n", inputsets.Version())
	fmt.Printf("commit: %s\n", inputsets.Commit())
	fmt.Printf("built: %s\n", inputsets.BuildTime())
	fmt.Printf("go: %s\n", inputsets.GoVersion())
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range maputil.SortedKeys(handlers) {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Print(`inputsets - runtime-input templates, input set merging and validation for pipeline documents

Usage:
  inputsets <command> [flags] [arguments]

Commands:
  template    Print the runtime-input template of a pipeline
  strip       Print a pipeline without its runtime inputs
  merge       Merge input sets into a pipeline
  validate    Check an input set against a pipeline or template
  mcp         Start the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  inputsets template pipeline.yaml
  inputsets merge --base pipeline.yaml inputs.yaml -o merged.yaml
  inputsets validate --template pipeline.yaml inputs.yaml

Run 'inputsets <command> --help' for more information on a command.
`)
}
