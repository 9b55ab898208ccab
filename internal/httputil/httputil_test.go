package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    string
	}{
		// JSON
		{"plain json", "application/json", MediaTypeJSON},
		{"json with charset", "application/json; charset=utf-8", MediaTypeJSON},
		{"uppercase json", "Application/JSON", MediaTypeJSON},
		{"vendor json", "application/vnd.pipeline+json", MediaTypeJSON},

		// YAML
		{"registered yaml", "application/yaml", MediaTypeYAML},
		{"x-yaml", "application/x-yaml", MediaTypeYAML},
		{"text yaml", "text/yaml", MediaTypeYAML},
		{"text x-yaml", "text/x-yaml; charset=utf-8", MediaTypeYAML},
		{"vendor yaml", "application/vnd.pipeline+yaml", MediaTypeYAML},

		// Unknown
		{"empty", "", MediaTypeUnknown},
		{"whitespace", "   ", MediaTypeUnknown},
		{"plain text", "text/plain", MediaTypeUnknown},
		{"octet stream", "application/octet-stream", MediaTypeUnknown},
		{"malformed", "application/json; =", MediaTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MediaType(tt.contentType))
		})
	}
}
