package validator

import (
	"fmt"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/tree"
)

// InvalidPaths returns the paths of override that template does not expose,
// in override order.
//
// An override path is valid when it is a template path, when it is an
// ancestor of a template path (the override supplies a whole object where
// the template has placeholders further down), or when it lies below a
// template path (the override fills a placeholder with an object). Identity
// and type fields are valid wherever their parent is. When template is empty
// every override path is invalid.
func InvalidPaths(template, override *fqn.Map) []fqn.Path {
	var invalid []fqn.Path
	if template.Len() == 0 {
		return override.Paths()
	}

	prefixes := template.Prefixes()
	for p := range override.All() {
		switch {
		case prefixes.Contains(p):
		case template.HasAncestor(p):
		case p.IsStructural() && len(p) > 1 && prefixes.Contains(p.Parent()):
		default:
			invalid = append(invalid, p)
		}
	}
	return invalid
}

// InvalidOverridePaths flattens both documents and returns the display form
// of every invalid override path. See InvalidPaths.
func InvalidOverridePaths(templateDoc, overrideDoc *tree.Node) ([]string, error) {
	tmpl, err := flatten.Flatten(templateDoc, flatten.WithSourceName("template"))
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	over, err := flatten.Flatten(overrideDoc, flatten.WithSourceName("override"))
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	paths := InvalidPaths(tmpl.Map, over.Map)
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out, nil
}
