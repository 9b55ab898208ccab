package template

import (
	"fmt"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/tree"
)

// Extract selects entries of m by whether they are runtime-input
// placeholders.
//
// With keep=true only placeholder entries are returned. With keep=false only
// concrete entries are returned, minus identity and variable-name fields:
// those are structure rather than content and are restored by the builder
// wherever a list element survives.
func Extract(m *fqn.Map, keep bool, matcher placeholder.Matcher) *fqn.Map {
	if matcher == nil {
		matcher = placeholder.Default()
	}
	return m.Filter(func(p fqn.Path, v *tree.Node) bool {
		isInput := placeholder.IsRuntimeInput(matcher, v)
		if keep {
			return isInput
		}
		return !isInput && !p.IsIdentifierOrVariableName()
	})
}

// CreateTemplate returns the runtime-input template of doc, or nil when doc
// has no runtime inputs.
func CreateTemplate(doc *tree.Node, opts ...Option) (*tree.Node, error) {
	return run(doc, true, opts)
}

// StripRuntimeInputs returns doc without its runtime inputs, or nil when
// nothing concrete remains.
func StripRuntimeInputs(doc *tree.Node, opts ...Option) (*tree.Node, error) {
	return run(doc, false, opts)
}

func run(doc *tree.Node, keep bool, opts []Option) (*tree.Node, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("template: invalid options: %w", err)
	}

	res, err := flatten.Flatten(doc, cfg.flattenOptions...)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	selected := Extract(res.Map, keep, cfg.matcher)
	cfg.logger.Debug("extracted entries",
		"runtimeInputs", keep,
		"selected", selected.Len(),
		"total", res.Map.Len(),
	)
	return cfg.builder.Build(selected, res.Root), nil
}
