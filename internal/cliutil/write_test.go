package cliutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "with args", format: "Hello, %s!", args: []any{"World"}, want: "Hello, World!"},
		{name: "no args", format: "Simple message", want: "Simple message"},
		{name: "multiple args", format: "%s: %d inputs, %v valid", args: []any{"Status", 5, true}, want: "Status: 5 inputs, true valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

// errorWriter is a writer that always returns an error
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestWritef_WriteError(t *testing.T) {
	// Should not panic
	Writef(errorWriter{}, "This will fail")
}

func TestWriteSection(t *testing.T) {
	var buf bytes.Buffer
	wrote := WriteSection(&buf, "Ignored override paths", []string{
		"pipeline.name",
		"pipeline.variables.[name:region].description",
	})

	assert.True(t, wrote)
	assert.Equal(t, "Ignored override paths (2):\n"+
		"  pipeline.name\n"+
		"  pipeline.variables.[name:region].description\n", buf.String())
}

func TestWriteSection_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, WriteSection(&buf, "Errors", nil))
	assert.Empty(t, buf.String())
}

type label string

func (l label) String() string { return "<" + string(l) + ">" }

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"<a>", "<b>"}, Lines([]label{"a", "b"}))
	assert.Empty(t, Lines[label](nil))
}
