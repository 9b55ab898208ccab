package flatten

import (
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/tree"
)

// KeyResolver derives the identity of a list element.
type KeyResolver interface {
	// Resolve returns the identity field name and value of elem, or ok=false
	// when elem cannot be identified by this resolver.
	Resolve(elem *tree.Node) (field, value string, ok bool)
}

// FieldKey resolves an element by the scalar value of the field it names.
type FieldKey string

// Resolve implements KeyResolver.
func (k FieldKey) Resolve(elem *tree.Node) (string, string, bool) {
	v, ok := elem.Lookup(string(k))
	if !ok || !v.IsScalar() || v.Value == nil {
		return "", "", false
	}
	return string(k), v.Text(), true
}

// DefaultKeyResolvers returns the identity precedence used for lists of
// multi-key objects: identifier, then name, then key.
func DefaultKeyResolvers() []KeyResolver {
	return []KeyResolver{
		FieldKey(fqn.IdentifierField),
		FieldKey(fqn.NameField),
		FieldKey(fqn.KeyField),
	}
}

// resolveElement returns the ListID segment for elem using the first
// resolver that matches.
func resolveElement(resolvers []KeyResolver, elem *tree.Node) (fqn.Segment, bool) {
	if !elem.IsObject() {
		return fqn.Segment{}, false
	}
	for _, r := range resolvers {
		if field, value, ok := r.Resolve(elem); ok {
			return fqn.ListID(field, value), true
		}
	}
	return fqn.Segment{}, false
}

// wrapper returns the single field of a single-key object.
func wrapper(elem *tree.Node) (tree.Field, bool) {
	if !elem.IsObject() || len(elem.Fields) != 1 {
		return tree.Field{}, false
	}
	return elem.Fields[0], true
}

// isParallel reports whether f is a "parallel" wrapper holding a list.
func isParallel(f tree.Field) bool {
	return f.Key == fqn.ParallelField && f.Value.IsArray()
}

// listMode describes how the elements of a list are addressed.
type listMode uint8

const (
	listOpaque listMode = iota
	listEmbedded
	listByID
)

// classifyList picks the addressing mode for items, following the identity
// rules documented on the package. The first element decides between the
// single-key and the multi-key rules.
func classifyList(resolvers []KeyResolver, items []*tree.Node) listMode {
	if len(items) == 0 || !items[0].IsObject() {
		return listOpaque
	}

	if len(items[0].Fields) == 1 {
		if embeddedWrappers(items) {
			return listEmbedded
		}
		return listOpaque
	}

	for _, item := range items {
		if _, ok := resolveElement(resolvers, item); !ok {
			return listOpaque
		}
	}
	return listByID
}

// embeddedWrappers reports whether every item is a parallel wrapper or a
// single-key object whose value is an object carrying an identifier.
func embeddedWrappers(items []*tree.Node) bool {
	for _, item := range items {
		f, ok := wrapper(item)
		if !ok {
			return false
		}
		if isParallel(f) {
			continue
		}
		if !f.Value.IsObject() {
			return false
		}
		if _, _, ok := FieldKey(fqn.IdentifierField).Resolve(f.Value); !ok {
			return false
		}
	}
	return true
}
