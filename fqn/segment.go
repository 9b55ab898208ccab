package fqn

// SegmentKind identifies the variant held by a Segment.
type SegmentKind uint8

const (
	// KindKey is a plain object field.
	KindKey SegmentKind = iota
	// KindEmbeddedKey is a list element addressed through a single-key
	// wrapper object and the identity field of the wrapped object.
	KindEmbeddedKey
	// KindListID is a list element addressed by its own identity field.
	KindListID
	// KindParallel marks a parallel group.
	KindParallel
)

// ParallelDisplay is how a parallel marker segment is displayed.
const ParallelDisplay = "PARALLEL"

// String returns the name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindEmbeddedKey:
		return "embeddedKey"
	case KindListID:
		return "listId"
	case KindParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Segment is one step of a Path.
type Segment struct {
	Kind SegmentKind
	// Key is the field name for KindKey and the wrapper key for KindEmbeddedKey.
	Key string
	// IDField names the identity field for KindEmbeddedKey and KindListID.
	IDField string
	// IDValue is the identity value for KindEmbeddedKey and KindListID.
	IDValue string
}

// Key returns a plain object field segment.
func Key(name string) Segment {
	return Segment{Kind: KindKey, Key: name}
}

// EmbeddedKey returns a segment addressing the list element wrapped in
// {outerKey: {idField: idValue, ...}}.
func EmbeddedKey(outerKey, idField, idValue string) Segment {
	return Segment{Kind: KindEmbeddedKey, Key: outerKey, IDField: idField, IDValue: idValue}
}

// ListID returns a segment addressing the list element {idField: idValue, ...}.
func ListID(idField, idValue string) Segment {
	return Segment{Kind: KindListID, IDField: idField, IDValue: idValue}
}

// Parallel returns the parallel group marker.
func Parallel() Segment {
	return Segment{Kind: KindParallel}
}

// IsIdentity reports whether s addresses a list element by identity.
func (s Segment) IsIdentity() bool {
	return s.Kind == KindEmbeddedKey || s.Kind == KindListID
}

// IsKey reports whether s is a plain field named name.
func (s Segment) IsKey(name string) bool {
	return s.Kind == KindKey && s.Key == name
}

// String returns the display form of the segment.
func (s Segment) String() string {
	switch s.Kind {
	case KindEmbeddedKey:
		return s.Key + "[" + s.IDField + ":" + s.IDValue + "]"
	case KindListID:
		return "[" + s.IDField + ":" + s.IDValue + "]"
	case KindParallel:
		return ParallelDisplay
	default:
		return s.Key
	}
}
