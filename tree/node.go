// Package tree provides the generic, order-preserving document model that the
// inputsets packages operate on.
//
// A document is a tree of [Node] values. Each node is exactly one of three
// kinds: an object (ordered string-keyed fields), an array (ordered items) or
// a scalar (string, number, bool or null). Field order is significant and is
// preserved through parsing, transformation and serialization.
//
// Nodes are treated as immutable once built: every transformation in this
// module returns new nodes and never edits its inputs. Use [Node.Clone]
// before modifying a node obtained from elsewhere.
package tree

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind identifies which variant of the tagged union a Node holds.
type Kind uint8

const (
	// KindScalar is a string, number, bool or null value.
	KindScalar Kind = iota
	// KindObject is an ordered list of string-keyed fields.
	KindObject
	// KindArray is an ordered list of items.
	KindArray
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Field is one key/value pair of an object node.
type Field struct {
	Key   string
	Value *Node
}

// Node is one position in a document tree.
type Node struct {
	// Kind selects which of the remaining fields is meaningful.
	Kind Kind
	// Value holds the scalar value: nil, bool, int, int64, uint64, float64 or string.
	Value any
	// Fields holds object fields in declaration order.
	Fields []Field
	// Items holds array items in order.
	Items []*Node
}

// Scalar returns a scalar node holding v.
func Scalar(v any) *Node {
	return &Node{Kind: KindScalar, Value: v}
}

// String returns a string scalar node.
func String(s string) *Node {
	return Scalar(s)
}

// Null returns a null scalar node.
func Null() *Node {
	return Scalar(nil)
}

// Object returns an object node with the given fields.
func Object(fields ...Field) *Node {
	if fields == nil {
		fields = []Field{}
	}
	return &Node{Kind: KindObject, Fields: fields}
}

// Array returns an array node with the given items.
func Array(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{Kind: KindArray, Items: items}
}

// F builds a Field; it keeps object literals in tests and fixtures short.
func F(key string, value *Node) Field {
	return Field{Key: key, Value: value}
}

// IsObject reports whether n is an object node.
func (n *Node) IsObject() bool { return n != nil && n.Kind == KindObject }

// IsArray reports whether n is an array node.
func (n *Node) IsArray() bool { return n != nil && n.Kind == KindArray }

// IsScalar reports whether n is a scalar node.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == KindScalar }

// IsLeaf reports whether n has no decomposable children: a scalar, an empty
// object or an empty array.
func (n *Node) IsLeaf() bool {
	if n == nil {
		return true
	}
	switch n.Kind {
	case KindObject:
		return len(n.Fields) == 0
	case KindArray:
		return len(n.Items) == 0
	default:
		return true
	}
}

// Len returns the number of fields or items; scalars have length 0.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindObject:
		return len(n.Fields)
	case KindArray:
		return len(n.Items)
	default:
		return 0
	}
}

// Lookup returns the value of the first field named key.
func (n *Node) Lookup(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Get returns the value of the field named key, or nil.
func (n *Node) Get(key string) *Node {
	v, _ := n.Lookup(key)
	return v
}

// Has reports whether n is an object with a field named key.
func (n *Node) Has(key string) bool {
	_, ok := n.Lookup(key)
	return ok
}

// Keys returns the object's field names in order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	keys := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Text returns the textual form of n. Strings are returned unquoted, other
// scalars in their canonical YAML/JSON spelling, and objects and arrays as
// compact JSON.
func (n *Node) Text() string {
	if n == nil {
		return "null"
	}
	if n.Kind != KindScalar {
		data, err := n.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<%s>", n.Kind)
		}
		return string(data)
	}
	return scalarText(n.Value)
}

// String implements fmt.Stringer using Text.
func (n *Node) String() string {
	return n.Text()
}

func scalarText(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Value: n.Value}
	switch n.Kind {
	case KindObject:
		out.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			out.Fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
		}
	case KindArray:
		out.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Equal reports whether a and b are structurally equal, including field order.
// Numeric scalars compare by their textual form so that 1 (int) and 1 (int64)
// are equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindObject:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Key != b.Fields[i].Key || !Equal(a.Fields[i].Value, b.Fields[i].Value) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	default:
		if isString(a.Value) != isString(b.Value) {
			return false
		}
		return scalarText(a.Value) == scalarText(b.Value)
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// FromAny converts plain Go values (as produced by encoding/json or a YAML
// decoder into `any`) into a tree. Map keys are sorted because Go maps carry
// no order; use the parser package when source order matters.
func FromAny(v any) *Node {
	switch val := v.(type) {
	case *Node:
		return val.Clone()
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: FromAny(val[k])})
		}
		return Object(fields...)
	case []any:
		items := make([]*Node, 0, len(val))
		for _, item := range val {
			items = append(items, FromAny(item))
		}
		return Array(items...)
	case []string:
		items := make([]*Node, 0, len(val))
		for _, item := range val {
			items = append(items, String(item))
		}
		return Array(items...)
	case float32:
		return Scalar(float64(val))
	case int32:
		return Scalar(int64(val))
	default:
		return Scalar(val)
	}
}

// ToAny converts n into plain Go values (map[string]any, []any, scalars).
// Field order is lost.
func (n *Node) ToAny() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindObject:
		m := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			m[f.Key] = f.Value.ToAny()
		}
		return m
	case KindArray:
		s := make([]any, len(n.Items))
		for i, item := range n.Items {
			s[i] = item.ToAny()
		}
		return s
	default:
		return n.Value
	}
}
