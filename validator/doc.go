// Package validator checks override documents against a runtime-input
// template.
//
// Two kinds of problems are reported:
//
//   - Invalid override paths: values supplied at locations the template does
//     not expose. Such values would be silently ignored by a merge, so they
//     usually indicate a typo or a stale input set. See [InvalidPaths] and
//     [InvalidOverridePaths].
//   - Invalid values: values that violate the validator clause of the
//     template placeholder they fill (allowedValues or regex), and "type"
//     fields that differ from the template. See [ValidateValues].
//
// Override values that are themselves expressions ("<+...>") are left to be
// resolved at run time and are not checked.
//
// # Basic Usage
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithTemplate(templateDoc),
//	    validator.WithOverride(inputSetDoc),
//	)
//	if err != nil {
//	    return err
//	}
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        fmt.Println(e)
//	    }
//	}
package validator
