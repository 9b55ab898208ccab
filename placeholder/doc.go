// Package placeholder implements the runtime-input placeholder grammar.
//
// A leaf string is a runtime input when, with every double quote removed, it
// starts with the marker token ("<+input>" by default). The marker may be
// followed by dotted clauses:
//
//	<+input>
//	<+input>.allowedValues(dev,qa,prod)
//	<+input>.regex(^svc-[a-z]+$)
//	<+input>.default(qa).allowedValues(dev,qa,prod)
//	<+input>.executionInput()
//
// allowedValues and regex are validators: they constrain the value a user
// may supply. default and executionInput are modifiers and carry no
// constraint.
//
// [Grammar] is the default [Matcher]. Embedding systems with a different
// marker or clause syntax supply their own Matcher to the template, merger
// and validator packages.
//
// Validators are evaluated with github.com/expr-lang/expr; compiled programs
// are cached and safe for concurrent use.
package placeholder
