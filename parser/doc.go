// Package parser loads pipeline and input-set documents into trees.
//
// Documents are read from files, URLs, readers or byte slices. YAML, JSON
// and JSON with comments (JSONC) are accepted; all of them decode into the
// same order-preserving [tree.Node], so field order survives a round trip
// through the template and merge operations.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("pipeline.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tmpl, err := template.CreateTemplate(result.Document)
//
// Parse from a URL:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("https://example.com/pipelines/deploy.yaml"),
//	)
//
// # Output
//
// [MarshalYAML] and [MarshalJSON] render trees for output, keeping field
// order. [Marshal] picks the encoding from a [SourceFormat].
package parser
