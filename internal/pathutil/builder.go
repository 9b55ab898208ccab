package pathutil

import "strings"

// PathBuilder provides efficient incremental construction of display paths.
// Uses push/pop semantics to avoid allocations during traversal.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds a segment to the path.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
	if len(p.segments) > 1 {
		p.length++ // For dot separator
	}
	p.length += len(segment)
}

// PushQualified adds a segment qualified by an identity pair: "outer[field:value]".
// An empty outer produces "[field:value]".
func (p *PathBuilder) PushQualified(outer, field, value string) {
	var b strings.Builder
	b.Grow(len(outer) + len(field) + len(value) + 3)
	b.WriteString(outer)
	b.WriteByte('[')
	b.WriteString(field)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteByte(']')
	p.Push(b.String())
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last)
	if len(p.segments) > 0 {
		p.length--
	}
}

// Len returns the number of segments pushed.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the full path. Only call when the path is needed.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	b.WriteString(p.segments[0])
	for _, seg := range p.segments[1:] {
		b.WriteByte('.')
		b.WriteString(seg)
	}
	return b.String()
}
