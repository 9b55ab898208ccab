// Package httputil provides HTTP media type helpers for document fetching.
package httputil

import (
	"mime"
	"strings"
)

// Normalized media types of the documents this module reads.
const (
	MediaTypeJSON    = "application/json"
	MediaTypeYAML    = "application/yaml"
	MediaTypeUnknown = ""
)

// yamlMediaTypes lists the registered and common unofficial YAML media types.
var yamlMediaTypes = map[string]bool{
	"application/yaml":   true,
	"application/x-yaml": true,
	"text/yaml":          true,
	"text/x-yaml":        true,
}

// MediaType normalizes a Content-Type header value to MediaTypeJSON,
// MediaTypeYAML or MediaTypeUnknown. Parameters such as charset are ignored,
// and structured syntax suffixes ("+json", "+yaml") are honored.
func MediaType(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return MediaTypeUnknown
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return MediaTypeUnknown
	}

	switch {
	case mediaType == MediaTypeJSON, strings.HasSuffix(mediaType, "+json"):
		return MediaTypeJSON
	case yamlMediaTypes[mediaType], strings.HasSuffix(mediaType, "+yaml"):
		return MediaTypeYAML
	default:
		return MediaTypeUnknown
	}
}
