package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// FromYAML converts a decoded yaml.Node into a tree, keeping mapping order.
// Document nodes are unwrapped and aliases are resolved. An empty document
// yields nil.
func FromYAML(y *yaml.Node) (*Node, error) {
	if y == nil || y.Kind == 0 {
		return nil, nil
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, nil
		}
		return FromYAML(y.Content[0])

	case yaml.AliasNode:
		return FromYAML(y.Alias)

	case yaml.MappingNode:
		out := Object()
		out.Fields = make([]Field, 0, len(y.Content)/2)
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode := y.Content[i]
			if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("tree: line %d: mapping key must be a scalar", keyNode.Line)
			}
			value, err := FromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			if value == nil {
				value = Null()
			}
			out.Fields = append(out.Fields, Field{Key: keyNode.Value, Value: value})
		}
		return out, nil

	case yaml.SequenceNode:
		out := Array()
		out.Items = make([]*Node, 0, len(y.Content))
		for _, child := range y.Content {
			item, err := FromYAML(child)
			if err != nil {
				return nil, err
			}
			if item == nil {
				item = Null()
			}
			out.Items = append(out.Items, item)
		}
		return out, nil

	case yaml.ScalarNode:
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, fmt.Errorf("tree: line %d: decoding scalar: %w", y.Line, err)
		}
		return Scalar(v), nil

	default:
		return nil, fmt.Errorf("tree: line %d: unsupported YAML node kind %v", y.Line, y.Kind)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler so a Node can be the target of
// yaml.Unmarshal directly.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	out, err := FromYAML(value)
	if err != nil {
		return err
	}
	if out == nil {
		out = Null()
	}
	*n = *out
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting fields in order.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToYAML(), nil
}

// ToYAML converts n into a yaml.Node tree.
func (n *Node) ToYAML() *yaml.Node {
	if n == nil {
		return scalarNode("!!null", "null")
	}

	switch n.Kind {
	case KindObject:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, len(n.Fields)*2)}
		for _, f := range n.Fields {
			out.Content = append(out.Content, scalarNode("!!str", f.Key), f.Value.ToYAML())
		}
		return out
	case KindArray:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.Items))}
		for _, item := range n.Items {
			out.Content = append(out.Content, item.ToYAML())
		}
		return out
	default:
		return scalarToYAML(n.Value)
	}
}

func scalarToYAML(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null")
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val))
	case int, int64, uint64:
		return scalarNode("!!int", scalarText(val))
	case float64:
		switch {
		case math.IsNaN(val):
			return scalarNode("!!float", ".nan")
		case math.IsInf(val, 1):
			return scalarNode("!!float", ".inf")
		case math.IsInf(val, -1):
			return scalarNode("!!float", "-.inf")
		}
		text := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return scalarNode("!!float", text)
	case string:
		return scalarNode("!!str", val)
	default:
		return scalarNode("!!str", fmt.Sprint(val))
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
