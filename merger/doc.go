// Package merger merges override documents into a base document.
//
// Only runtime inputs can be overridden. The template of the base document
// (its placeholder leaves) decides which paths an override may set; values
// at every other path are copied from the base unchanged, whatever the
// override contains.
//
// For each path of the base document:
//
//   - If the template has the path and the override sets it, the override
//     value wins. Identity and "type" fields always keep the base value.
//   - If the template has the path and the override sets values below it,
//     the override's whole subtree at that path replaces the placeholder.
//   - Otherwise the base value is kept.
//
// With [WithAppendValidator], a value filling a placeholder that carries a
// validator clause keeps the clause: "eu" filling
// "<+input>.allowedValues(eu,us)" becomes "eu.allowedValues(eu,us)".
//
// [MergeOverrides] applies an ordered list of override documents (later
// ones win), can restrict everything to selected list branches with
// [WithScope], and reports override paths the template does not expose.
//
//	result, err := merger.MergeOverrides(pipeline, []*tree.Node{inputSet},
//	    merger.WithAppendValidator(true),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, p := range result.InvalidPaths {
//	    log.Printf("ignored override %s", p)
//	}
package merger
