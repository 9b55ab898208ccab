package pathutil

import "sync"

const (
	defaultPathCap = 12 // Pipeline paths rarely exceed a dozen segments
	maxPathCap     = 64 // Deeper builders are left to the GC
)

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{
			segments: make([]string, 0, defaultPathCap),
		}
	},
}

// Get retrieves a PathBuilder from the pool, reset and ready to use.
func Get() *PathBuilder {
	p := pathBuilderPool.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns a PathBuilder to the pool unless it grew past maxPathCap.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPathCap {
		return
	}
	pathBuilderPool.Put(p)
}

// Build renders the path that fill pushes onto a pooled builder.
func Build(fill func(*PathBuilder)) string {
	b := Get()
	defer Put(b)
	fill(b)
	return b.String()
}
