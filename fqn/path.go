package fqn

import (
	"strconv"
	"strings"

	"github.com/erraggy/inputsets/internal/pathutil"
)

// Reserved structural field names.
const (
	IdentifierField = "identifier"
	NameField       = "name"
	KeyField        = "key"
	TypeField       = "type"
	ParallelField   = "parallel"
)

// Path addresses one position in a document tree.
//
// Paths are values: methods that extend or shorten a path return a new slice
// and never write into the receiver's backing array.
type Path []Segment

// NewPath returns a path made of the given segments.
func NewPath(segments ...Segment) Path {
	return append(Path(nil), segments...)
}

// Keys returns a path made only of plain field segments.
func Keys(names ...string) Path {
	p := make(Path, len(names))
	for i, name := range names {
		p[i] = Key(name)
	}
	return p
}

// Append returns a new path with segs added after p.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Parent returns p without its last segment. The parent of a single-segment
// path is nil.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[: len(p)-1 : len(p)-1]
}

// Last returns the final segment, or the zero Segment for an empty path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}

// Equal reports whether p and other have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is p itself or one of p's ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// Compare orders paths segment by segment, shorter paths first when one is a
// prefix of the other. It returns -1, 0 or +1. The order is only used to sort
// reports; maps keep their insertion order.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		if c := compareSegment(p[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b Segment) int {
	switch {
	case a.Kind != b.Kind:
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	case a.Key != b.Key:
		return strings.Compare(a.Key, b.Key)
	case a.IDField != b.IDField:
		return strings.Compare(a.IDField, b.IDField)
	default:
		return strings.Compare(a.IDValue, b.IDValue)
	}
}

// Key returns an injective string encoding of p, suitable as a map key.
func (p Path) Key() string {
	buf := make([]byte, 0, len(p)*16)
	for _, s := range p {
		buf = append(buf, byte('0'+s.Kind))
		buf = appendLenPrefixed(buf, s.Key)
		buf = appendLenPrefixed(buf, s.IDField)
		buf = appendLenPrefixed(buf, s.IDValue)
	}
	return string(buf)
}

func appendLenPrefixed(buf []byte, s string) []byte {
	buf = strconv.AppendInt(buf, int64(len(s)), 10)
	buf = append(buf, ':')
	return append(buf, s...)
}

// String returns the display form, for example
// "pipeline.stages.stage[identifier:build].spec.timeout".
func (p Path) String() string {
	return pathutil.Build(func(b *pathutil.PathBuilder) {
		for _, s := range p {
			switch s.Kind {
			case KindEmbeddedKey:
				b.PushQualified(s.Key, s.IDField, s.IDValue)
			case KindListID:
				b.PushQualified("", s.IDField, s.IDValue)
			case KindParallel:
				b.Push(ParallelDisplay)
			default:
				b.Push(s.Key)
			}
		}
	})
}

// Expression returns the dotted expression form in which list elements are
// named by their identity value and parallel markers are omitted, for example
// "pipeline.stages.build.spec.timeout".
func (p Path) Expression() string {
	return pathutil.Build(func(b *pathutil.PathBuilder) {
		for _, s := range p {
			switch s.Kind {
			case KindEmbeddedKey, KindListID:
				b.Push(s.IDValue)
			case KindParallel:
			default:
				b.Push(s.Key)
			}
		}
	})
}

// IsIdentifierOrVariableName reports whether p addresses a structural
// identity field: an "identifier" field, or the field that names an element
// addressed by ListID (for example the "name" of a variable).
func (p Path) IsIdentifierOrVariableName() bool {
	last := p.Last()
	if last.Kind != KindKey {
		return false
	}
	if last.Key == IdentifierField {
		return true
	}
	if len(p) < 2 {
		return false
	}
	prev := p[len(p)-2]
	return prev.Kind == KindListID && prev.IDField == last.Key
}

// IsType reports whether p addresses a "type" field.
func (p Path) IsType() bool {
	return p.Last().IsKey(TypeField)
}

// IsStructural reports whether p addresses an identity or type field. Such
// values describe the shape of the document rather than its content.
func (p Path) IsStructural() bool {
	return p.IsIdentifierOrVariableName() || p.IsType()
}

// OutermostIdentity returns the first identity-bearing segment of p.
func (p Path) OutermostIdentity() (Segment, bool) {
	for _, s := range p {
		if s.IsIdentity() {
			return s, true
		}
	}
	return Segment{}, false
}
