// Package template derives runtime-input templates from documents.
//
// A template is the part of a document whose leaves are runtime-input
// placeholders ("<+input>", "<+input>.allowedValues(a,b)", ...), rebuilt as a
// document of its own. List elements keep their identity field and "type" so
// that a user filling in the template produces an override document whose
// paths line up with the original.
//
// [CreateTemplate] keeps only placeholders; [StripRuntimeInputs] is its
// complement and keeps only concrete values. Both work on trees; [Extract]
// is the underlying operation on flattened maps.
//
//	tmpl, err := template.CreateTemplate(doc)
//	if err != nil {
//	    return err
//	}
//	if tmpl == nil {
//	    // doc has no runtime inputs
//	}
package template
