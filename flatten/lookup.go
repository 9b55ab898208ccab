package flatten

import (
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/tree"
)

// Lookup returns the node of root addressed by p. Identity segments select
// list elements by their identity value; a Parallel segment makes the next
// segment match inside any parallel group of the current list.
func Lookup(root *tree.Node, p fqn.Path) (*tree.Node, bool) {
	if root == nil {
		return nil, false
	}
	if len(p) == 0 {
		return root, true
	}

	candidates := []*tree.Node{root}
	for _, seg := range p {
		var next []*tree.Node
		for _, c := range candidates {
			next = append(next, step(c, seg)...)
		}
		if len(next) == 0 {
			return nil, false
		}
		candidates = next
	}
	return candidates[0], true
}

// step returns the children of n that seg addresses.
func step(n *tree.Node, seg fqn.Segment) []*tree.Node {
	switch seg.Kind {
	case fqn.KindKey:
		if v, ok := n.Lookup(seg.Key); ok {
			return []*tree.Node{v}
		}

	case fqn.KindEmbeddedKey:
		if !n.IsArray() {
			return nil
		}
		for _, item := range n.Items {
			w, ok := wrapper(item)
			if !ok || w.Key != seg.Key {
				continue
			}
			if id, ok := w.Value.Lookup(seg.IDField); ok && id.IsScalar() && id.Text() == seg.IDValue {
				return []*tree.Node{w.Value}
			}
		}

	case fqn.KindListID:
		if !n.IsArray() {
			return nil
		}
		for _, item := range n.Items {
			if id, ok := item.Lookup(seg.IDField); ok && id.IsScalar() && id.Text() == seg.IDValue {
				return []*tree.Node{item}
			}
		}

	case fqn.KindParallel:
		if !n.IsArray() {
			return nil
		}
		var groups []*tree.Node
		for _, item := range n.Items {
			if w, ok := wrapper(item); ok && isParallel(w) {
				groups = append(groups, w.Value)
			}
		}
		return groups
	}
	return nil
}
