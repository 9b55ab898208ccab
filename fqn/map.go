package fqn

import (
	"iter"

	"github.com/erraggy/inputsets/tree"
)

// Map is an insertion-ordered mapping from Path to leaf node.
//
// The zero value and a nil *Map are both empty maps ready for reading; use
// NewMap before calling Set. Transformations never edit a Map they were
// given: they build a new one.
type Map struct {
	index  map[string]int
	paths  []Path
	values []*tree.Node
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Set stores v at p. Setting an existing path replaces its value and keeps
// its position.
func (m *Map) Set(p Path, v *tree.Node) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	k := p.Key()
	if i, ok := m.index[k]; ok {
		m.values[i] = v
		return
	}
	m.index[k] = len(m.paths)
	m.paths = append(m.paths, p)
	m.values = append(m.values, v)
}

// Get returns the value stored at p.
func (m *Map) Get(p Path) (*tree.Node, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[p.Key()]
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

// Has reports whether p is present.
func (m *Map) Has(p Path) bool {
	_, ok := m.Get(p)
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.paths)
}

// Paths returns the paths in insertion order.
func (m *Map) Paths() []Path {
	if m == nil {
		return nil
	}
	out := make([]Path, len(m.paths))
	copy(out, m.paths)
	return out
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[Path, *tree.Node] {
	return func(yield func(Path, *tree.Node) bool) {
		if m == nil {
			return
		}
		for i, p := range m.paths {
			if !yield(p, m.values[i]) {
				return
			}
		}
	}
}

// Clone returns a copy of m. Values are shared; nodes are never edited in
// place.
func (m *Map) Clone() *Map {
	out := NewMap()
	if m == nil {
		return out
	}
	out.paths = make([]Path, len(m.paths))
	copy(out.paths, m.paths)
	out.values = make([]*tree.Node, len(m.values))
	copy(out.values, m.values)
	for k, i := range m.index {
		out.index[k] = i
	}
	return out
}

// Filter returns a new map holding the entries for which keep returns true.
func (m *Map) Filter(keep func(Path, *tree.Node) bool) *Map {
	out := NewMap()
	for p, v := range m.All() {
		if keep(p, v) {
			out.Set(p, v)
		}
	}
	return out
}

// HasDescendant reports whether some present path lies strictly below p.
func (m *Map) HasDescendant(p Path) bool {
	for q := range m.All() {
		if len(q) > len(p) && q.HasPrefix(p) {
			return true
		}
	}
	return false
}

// HasAncestor reports whether some proper ancestor of p is present.
func (m *Map) HasAncestor(p Path) bool {
	for i := len(p) - 1; i > 0; i-- {
		if m.Has(p[:i]) {
			return true
		}
	}
	return false
}

// Under returns the entries at or below prefix, in insertion order.
func (m *Map) Under(prefix Path) *Map {
	return m.Filter(func(p Path, _ *tree.Node) bool {
		return p.HasPrefix(prefix)
	})
}

// Prefixes returns the set of every present path and all of its ancestors.
func (m *Map) Prefixes() PrefixSet {
	set := make(PrefixSet, m.Len()*2)
	for p := range m.All() {
		for i := 1; i <= len(p); i++ {
			set[p[:i].Key()] = struct{}{}
		}
	}
	return set
}

// PrefixSet answers "is this path present or an ancestor of a present path"
// in constant time. Build one with Map.Prefixes.
type PrefixSet map[string]struct{}

// Contains reports whether p is in the set.
func (s PrefixSet) Contains(p Path) bool {
	_, ok := s[p.Key()]
	return ok
}
