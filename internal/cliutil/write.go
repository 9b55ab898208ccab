// Package cliutil provides output helpers shared by the inputsets commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteSection writes a counted heading followed by one indented line per
// item:
//
//	Ignored override paths (2):
//	  pipeline.name
//	  pipeline.stages.stage[identifier:build].spec.command
//
// Nothing is written for an empty list. The return value reports whether
// the section was written.
func WriteSection(w io.Writer, title string, items []string) bool {
	if len(items) == 0 {
		return false
	}
	Writef(w, "%s (%d):\n", title, len(items))
	for _, item := range items {
		Writef(w, "  %s\n", item)
	}
	return true
}

// Lines returns the String form of each element of list.
func Lines[T fmt.Stringer](list []T) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = v.String()
	}
	return out
}
