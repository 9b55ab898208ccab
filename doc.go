// Package inputsets provides tools for runtime-input templates over nested
// YAML/JSON documents.
//
// A document author marks values that must be supplied later with a
// placeholder such as "<+input>" (optionally followed by a validator clause
// like ".allowedValues(a,b)"). At run time one or more partial override
// documents ("input sets") supply concrete values. This module derives the
// template of a document, merges overrides into it while leaving every
// non-templated value untouched, reports overrides that target locations the
// template does not expose, and can restrict all of this to selected named
// list branches.
//
// # Overview
//
// The library is split into small packages that mirror the processing flow:
//
//   - tree: the generic ordered document model (objects, arrays, scalars)
//   - fqn: fully qualified names (paths) addressing leaves and the ordered path map
//   - flatten: tree to path map conversion and the inverse reconstruction
//   - placeholder: the runtime-input marker grammar and validator clauses
//   - template: template extraction and runtime-input stripping
//   - scope: restriction of a path map to selected list element identities
//   - merger: merging override documents into a base document
//   - validator: detection of invalid override paths and values
//   - parser: reading YAML, JSON and JSONC text into trees and writing them back
//
// # Quick Start
//
// Derive the template of a document:
//
//	import (
//		"github.com/erraggy/inputsets/parser"
//		"github.com/erraggy/inputsets/template"
//	)
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("pipeline.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	tmpl, err := template.CreateTemplate(result.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := parser.MarshalYAML(tmpl)
//	fmt.Print(string(out))
//
// Merge input sets into a pipeline:
//
//	import "github.com/erraggy/inputsets/merger"
//
//	merged, err := merger.MergeOverrides(base, []*tree.Node{inputSet},
//		merger.WithAppendValidator(true),
//		merger.WithScope("build", "deploy"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range merged.InvalidPaths {
//		fmt.Println("ignored:", p)
//	}
//
// # Paths
//
// Every leaf is addressed by an [fqn.Path]. List elements are addressed by
// meaning rather than position: a list of single-key objects wrapping an
// inner object with an "identifier" field is addressed as
// "stages.stage[identifier:build]", a list of multi-key objects carrying an
// "identifier", "name" or "key" field directly is addressed as
// "variables.[name:region]". Lists with no identity are opaque leaves.
//
// # Errors
//
// Typed errors live in the inputerrors package and support errors.Is and
// errors.As. A document defining the same path twice fails with
// [inputerrors.DuplicatePathError]; override paths the template does not
// expose are collected and reported rather than failing the merge.
package inputsets
