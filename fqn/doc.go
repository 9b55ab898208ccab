// Package fqn models fully qualified names: stable, meaning-based addresses
// of leaf positions inside a document tree.
//
// A [Path] is an ordered, non-empty sequence of [Segment] values. Segments
// come in four kinds:
//
//   - [Key] addresses a plain object field.
//   - [EmbeddedKey] addresses an element of a list whose elements are
//     single-key wrapper objects ({stage: {identifier: build, ...}}).
//   - [ListID] addresses an element of a list of objects that carry an
//     identity field directly ({name: region, value: eu}).
//   - [Parallel] marks that the next segment lives inside a "parallel"
//     wrapper list.
//
// Paths render in two forms. [Path.String] is the unambiguous display form
// used in error messages:
//
//	pipeline.stages.stage[identifier:build].spec.execution.steps.PARALLEL.step[identifier:lint].timeout
//
// [Path.Expression] is the dotted expression form in which list elements are
// named by their identity values and parallel markers disappear:
//
//	pipeline.stages.build.spec.execution.steps.lint.timeout
//
// A [Map] is an insertion-ordered mapping from Path to leaf node. Iteration
// order is the order in which paths were first added, which for flattened
// documents is depth-first declaration order.
package fqn
