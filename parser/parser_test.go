package parser

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/inputsets/inputerrors"
	"github.com/erraggy/inputsets/internal/testutil"
	"github.com/erraggy/inputsets/tree"
)

const pipelineJSON = `{
  "pipeline": {
    "identifier": "p",
    "timeout": "<+input>",
    "stages": [
      {"stage": {"identifier": "s1", "replicas": 2}}
    ]
  }
}`

const pipelineJSONC = `// deploy pipeline
{
  "pipeline": {
    "identifier": "p", // stable id
    "timeout": "<+input>",
    /* stages */
    "stages": [
      {"stage": {"identifier": "s1", "replicas": 2}},
    ],
  },
}`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantFormat SourceFormat
	}{
		{name: "yaml", file: "pipeline.yaml", content: testutil.PipelineYAML, wantFormat: SourceFormatYAML},
		{name: "yml", file: "pipeline.yml", content: testutil.PipelineYAML, wantFormat: SourceFormatYAML},
		{name: "json", file: "pipeline.json", content: pipelineJSON, wantFormat: SourceFormatJSON},
		{name: "jsonc by extension", file: "pipeline.jsonc", content: pipelineJSONC, wantFormat: SourceFormatJSONC},
		{name: "jsonc in json file", file: "pipeline.json", content: pipelineJSONC, wantFormat: SourceFormatJSONC},
		{name: "json without extension", file: "pipeline", content: pipelineJSON, wantFormat: SourceFormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteTempFile(t, tt.file, tt.content)

			res, err := ParseWithOptions(WithFilePath(path))
			require.NoError(t, err)
			assert.Equal(t, path, res.SourcePath)
			assert.Equal(t, tt.wantFormat, res.SourceFormat)
			assert.Equal(t, int64(len(tt.content)), res.SourceSize)
			require.NotNil(t, res.Document)
			assert.Equal(t, []string{"pipeline"}, res.Document.Keys())
		})
	}
}

func TestParseJSONAndJSONCAgree(t *testing.T) {
	plain, err := ParseWithOptions(WithBytes([]byte(pipelineJSON)))
	require.NoError(t, err)
	commented, err := ParseWithOptions(WithBytes([]byte(pipelineJSONC)))
	require.NoError(t, err)

	assert.True(t, tree.Equal(plain.Document, commented.Document))
	assert.Equal(t, []string{"identifier", "timeout", "stages"}, plain.Document.Get("pipeline").Keys())
}

func TestParseBytesSourcePath(t *testing.T) {
	res, err := ParseWithOptions(WithBytes([]byte(testutil.PipelineYAML)))
	require.NoError(t, err)
	assert.Equal(t, "ParseBytes.yaml", res.SourcePath)

	res, err = ParseWithOptions(WithBytes([]byte(pipelineJSON)))
	require.NoError(t, err)
	assert.Equal(t, "ParseBytes.json", res.SourcePath)

	res, err = ParseWithOptions(WithReader(strings.NewReader(pipelineJSON)))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.json", res.SourcePath)

	res, err = ParseWithOptions(WithBytes([]byte(pipelineJSON)), WithSourceName("inline"))
	require.NoError(t, err)
	assert.Equal(t, "inline", res.SourcePath)
}

func TestParseEmptyDocument(t *testing.T) {
	res, err := ParseWithOptions(WithBytes([]byte("")))
	require.NoError(t, err)
	assert.Nil(t, res.Document)
}

func TestParseInvalidDocument(t *testing.T) {
	path := testutil.WriteTempFile(t, "broken.yaml", "a: [1, 2")

	_, err := ParseWithOptions(WithFilePath(path))
	require.Error(t, err)
	assert.True(t, errors.Is(err, inputerrors.ErrParse))

	var parseErr *inputerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestParseMaxFileSize(t *testing.T) {
	data := []byte(testutil.PipelineYAML)

	_, err := ParseWithOptions(WithBytes(data), WithMaxFileSize(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, inputerrors.ErrResourceLimit))

	_, err = ParseWithOptions(WithReader(strings.NewReader(testutil.PipelineYAML)), WithMaxFileSize(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, inputerrors.ErrResourceLimit))

	path := testutil.WriteTempFile(t, "big.yaml", testutil.PipelineYAML)
	_, err = ParseWithOptions(WithFilePath(path), WithMaxFileSize(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, inputerrors.ErrResourceLimit))
}

func TestParseMissingFile(t *testing.T) {
	_, err := ParseWithOptions(WithFilePath("does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pipeline":
			assert.Equal(t, "inputsets-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(pipelineJSON))
		case "/pipeline.yaml":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(testutil.PipelineYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	res, err := ParseWithOptions(
		WithFilePath(server.URL+"/pipeline"),
		WithUserAgent("inputsets-test"),
		WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, res.SourceFormat)
	assert.Equal(t, server.URL+"/pipeline", res.SourcePath)

	res, err = ParseWithOptions(WithFilePath(server.URL+"/pipeline.yaml"), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, res.SourceFormat)

	_, err = ParseWithOptions(WithFilePath(server.URL+"/missing"), WithHTTPClient(server.Client()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestParseOptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "no source", opts: nil, wantErr: "no input source specified"},
		{name: "two sources", opts: []Option{WithBytes([]byte("a: 1")), WithFilePath("x.yaml")}, wantErr: "exactly one input source must be specified, got 2"},
		{name: "nil reader", opts: []Option{WithReader(nil)}, wantErr: "reader cannot be nil"},
		{name: "nil bytes", opts: []Option{WithBytes(nil)}, wantErr: "bytes cannot be nil"},
		{name: "negative size", opts: []Option{WithBytes([]byte("a: 1")), WithMaxFileSize(-1)}, wantErr: "configuration error for maxFileSize (value: -1): cannot be negative"},
		{name: "empty source name", opts: []Option{WithBytes([]byte("a: 1")), WithSourceName("")}, wantErr: "source name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHasJSONCSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain", input: `{"a": 1, "b": [1, 2]}`, want: false},
		{name: "line comment", input: "{\"a\": 1 // note\n}", want: true},
		{name: "block comment", input: `{/* c */ "a": 1}`, want: true},
		{name: "trailing comma object", input: `{"a": 1,}`, want: true},
		{name: "trailing comma array", input: "[1, 2,\n]", want: true},
		{name: "slashes in string", input: `{"url": "https://example.com"}`, want: false},
		{name: "escaped quote in string", input: `{"a": "x\" // y"}`, want: false},
		{name: "comma in string", input: `{"a": ",}"}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasJSONCSyntax([]byte(tt.input)))
		})
	}
}

func TestDetectFormatFromURL(t *testing.T) {
	assert.Equal(t, SourceFormatYAML, detectFormatFromURL("https://x/p.yml", "application/json"))
	assert.Equal(t, SourceFormatJSON, detectFormatFromURL("https://x/p", "application/json"))
	assert.Equal(t, SourceFormatYAML, detectFormatFromURL("https://x/p", "application/x-yaml"))
	assert.Equal(t, SourceFormatUnknown, detectFormatFromURL("https://x/p", "text/plain"))
}
