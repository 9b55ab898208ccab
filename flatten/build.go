package flatten

import (
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/tree"
)

// Builder reconstructs trees from path maps.
//
// The zero value is ready to use and applies the default identity rules.
// KeyResolvers must match the ones used to flatten the original tree.
type Builder struct {
	KeyResolvers []KeyResolver
}

// Build reconstructs a tree from m using original as the structural
// reference. It returns nil when no entry of m survives.
func Build(m *fqn.Map, original *tree.Node) *tree.Node {
	return (&Builder{}).Build(m, original)
}

// Build re-walks original and emits only the branches that still have
// entries in m, substituting the values m holds. Field order follows
// original; fields m introduces below an existing object are appended after
// the original fields. Objects that are list elements get their identity
// field and "type" restored from original.
func (b *Builder) Build(m *fqn.Map, original *tree.Node) *tree.Node {
	if m.Len() == 0 {
		return nil
	}
	resolvers := b.KeyResolvers
	if resolvers == nil {
		resolvers = DefaultKeyResolvers()
	}
	st := &buildState{m: m, prefixes: m.Prefixes(), children: childIndex(m), resolvers: resolvers}
	if original == nil || original.IsLeaf() {
		return st.synthesize(nil)
	}
	return st.node(original, nil, "")
}

type buildState struct {
	m         *fqn.Map
	prefixes  fqn.PrefixSet
	children  map[string][]fqn.Segment
	resolvers []KeyResolver
}

// childIndex maps the key of every ancestor path in m to the distinct
// segments that follow it, in map order.
func childIndex(m *fqn.Map) map[string][]fqn.Segment {
	idx := make(map[string][]fqn.Segment)
	seen := make(map[string]struct{})
	for q := range m.All() {
		for i := 0; i < len(q); i++ {
			k := q[:i+1].Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			parent := q[:i].Key()
			idx[parent] = append(idx[parent], q[i])
		}
	}
	return idx
}

// value returns the entry at p unless m also holds entries below p, in which
// case those entries describe the position and the value is ignored.
func (st *buildState) value(p fqn.Path) (*tree.Node, bool) {
	v, ok := st.m.Get(p)
	if !ok || len(st.children[p.Key()]) > 0 {
		return nil, false
	}
	return v, true
}

// node rebuilds orig found at p. idField is the identity field name when
// orig is a list element, and empty otherwise.
func (st *buildState) node(orig *tree.Node, p fqn.Path, idField string) *tree.Node {
	if len(p) > 0 {
		if v, ok := st.value(p); ok {
			return v
		}
		if !st.prefixes.Contains(p) {
			return nil
		}
	}

	switch {
	case orig.IsObject() && len(orig.Fields) > 0:
		return st.object(orig, p, idField)
	case orig.IsArray() && len(orig.Items) > 0:
		return st.array(orig, p)
	default:
		// The map reaches below a position that was a leaf in original.
		return st.synthesize(p)
	}
}

func (st *buildState) object(orig *tree.Node, p fqn.Path, idField string) *tree.Node {
	built := make([]*tree.Node, len(orig.Fields))
	survived := false
	for i, f := range orig.Fields {
		built[i] = st.node(f.Value, p.Append(fqn.Key(f.Key)), "")
		if built[i] != nil {
			survived = true
		}
	}

	known := make(map[string]struct{}, len(orig.Fields))
	for _, f := range orig.Fields {
		known[f.Key] = struct{}{}
	}
	extra := st.extraFields(p, known)
	if !survived && len(extra) == 0 {
		return nil
	}

	out := tree.Object()
	for i, f := range orig.Fields {
		v := built[i]
		if v == nil && idField != "" && (f.Key == idField || f.Key == fqn.TypeField) {
			v = f.Value
		}
		if v != nil {
			out.Fields = append(out.Fields, tree.F(f.Key, v))
		}
	}
	out.Fields = append(out.Fields, extra...)
	return out
}

// extraFields builds the fields m holds directly below p whose keys are not
// in known, in map order.
func (st *buildState) extraFields(p fqn.Path, known map[string]struct{}) []tree.Field {
	var out []tree.Field
	for _, next := range st.children[p.Key()] {
		if next.Kind != fqn.KindKey {
			continue
		}
		if _, ok := known[next.Key]; ok {
			continue
		}
		if v := st.synthesize(p.Append(next)); v != nil {
			out = append(out, tree.F(next.Key, v))
		}
	}
	return out
}

func (st *buildState) array(orig *tree.Node, p fqn.Path) *tree.Node {
	mode := classifyList(st.resolvers, orig.Items)
	if mode == listOpaque {
		return nil
	}

	out := tree.Array()
	for _, item := range orig.Items {
		if mode == listByID {
			seg, _ := resolveElement(st.resolvers, item)
			if v := st.node(item, p.Append(seg), seg.IDField); v != nil {
				out.Items = append(out.Items, v)
			}
			continue
		}

		w, _ := wrapper(item)
		if isParallel(w) {
			// A pruned group comes back nil; an empty group kept as a leaf
			// is emitted as is.
			if v := st.node(w.Value, p.Append(fqn.Parallel()), ""); v != nil {
				out.Items = append(out.Items, tree.Object(tree.F(w.Key, v)))
			}
			continue
		}
		id := w.Value.Get(fqn.IdentifierField).Text()
		seg := fqn.EmbeddedKey(w.Key, fqn.IdentifierField, id)
		if v := st.node(w.Value, p.Append(seg), fqn.IdentifierField); v != nil {
			out.Items = append(out.Items, tree.Object(tree.F(w.Key, v)))
		}
	}

	if len(out.Items) == 0 {
		return nil
	}
	return out
}

// synthesize builds the subtree at p from m alone, for positions original
// does not describe.
func (st *buildState) synthesize(p fqn.Path) *tree.Node {
	if len(p) > 0 {
		if v, ok := st.value(p); ok {
			return v
		}
	}

	var fields []tree.Field
	var items []*tree.Node
	for _, next := range st.children[p.Key()] {
		child := st.synthesize(p.Append(next))
		if child == nil {
			continue
		}
		switch next.Kind {
		case fqn.KindKey:
			fields = append(fields, tree.F(next.Key, child))
		case fqn.KindListID:
			items = append(items, withIdentity(child, next.IDField, next.IDValue))
		case fqn.KindEmbeddedKey:
			items = append(items, tree.Object(tree.F(next.Key, withIdentity(child, next.IDField, next.IDValue))))
		case fqn.KindParallel:
			if child.IsArray() {
				items = append(items, tree.Object(tree.F(fqn.ParallelField, child)))
			}
		}
	}

	switch {
	case len(fields) > 0:
		return tree.Object(fields...)
	case len(items) > 0:
		return tree.Array(items...)
	default:
		return nil
	}
}

// withIdentity returns obj with field set to value, placed first unless obj
// already carries it.
func withIdentity(obj *tree.Node, field, value string) *tree.Node {
	if !obj.IsObject() || obj.Has(field) {
		return obj
	}
	fields := make([]tree.Field, 0, len(obj.Fields)+1)
	fields = append(fields, tree.F(field, tree.String(value)))
	fields = append(fields, obj.Fields...)
	return tree.Object(fields...)
}
