// Package flatten converts document trees into ordered path→leaf maps and
// back.
//
// [Flatten] walks a tree depth-first in field declaration order and records
// every leaf (scalar, empty object, empty array, or opaque list) under its
// [fqn.Path]. List elements are addressed by identity rather than position:
//
//   - A list of single-key wrapper objects whose wrapped object carries an
//     "identifier" field is addressed with [fqn.EmbeddedKey]. A wrapper named
//     "parallel" holding a list is flattened with the same rules below an
//     [fqn.Parallel] marker.
//   - A list of single-key objects that does not meet the rule above is a
//     single opaque leaf, whatever the wrapped values are.
//   - A list whose first element has several fields is addressed with
//     [fqn.ListID] using the first [KeyResolver] that matches each element
//     ("identifier", then "name", then "key" by default).
//   - Any other list, including empty lists, lists of scalars and lists
//     whose elements cannot all be identified, is a single opaque leaf.
//
// Two positions that produce the same path make the document invalid;
// Flatten then fails with [*inputerrors.DuplicatePathError] and returns no
// partial result.
//
// [Build] is the inverse: it re-walks the original tree and emits only the
// branches that still have entries in a (filtered or merged) map, restoring
// list-element identity and "type" fields so the result can be flattened
// again to the same paths.
//
// # Basic Usage
//
//	res, err := flatten.Flatten(doc)
//	if err != nil {
//	    return err
//	}
//	for path, value := range res.Map.All() {
//	    fmt.Println(path, value)
//	}
//	rebuilt := flatten.Build(res.Map, res.Root)
package flatten
