package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathBuilder_Basic(t *testing.T) {
	p := &PathBuilder{}
	p.Push("pipeline")
	p.Push("name")

	assert.Equal(t, "pipeline.name", p.String())
	assert.Equal(t, 2, p.Len())
}

func TestPathBuilder_Qualified(t *testing.T) {
	tests := []struct {
		name  string
		outer string
		want  string
	}{
		{name: "with outer key", outer: "stage", want: "pipeline.stages.stage[identifier:s1].spec"},
		{name: "without outer key", outer: "", want: "pipeline.stages.[identifier:s1].spec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PathBuilder{}
			p.Push("pipeline")
			p.Push("stages")
			p.PushQualified(tt.outer, "identifier", "s1")
			p.Push("spec")
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestPathBuilder_PushPop(t *testing.T) {
	p := &PathBuilder{}
	p.Push("a")
	p.Push("b")
	p.Pop()
	p.Push("c")

	assert.Equal(t, "a.c", p.String())
}

func TestPathBuilder_PopEmpty(t *testing.T) {
	p := &PathBuilder{}
	p.Pop() // Should not panic
	assert.Empty(t, p.String())
}

func TestPathBuilder_Reset(t *testing.T) {
	p := &PathBuilder{}
	p.Push("a")
	p.Push("b")
	p.Reset()
	assert.Empty(t, p.String())

	p.Push("c")
	assert.Equal(t, "c", p.String())
}

func TestPool_GetPut(t *testing.T) {
	p := Get()
	require.NotNil(t, p)

	p.Push("test")
	Put(p)

	p2 := Get()
	require.NotNil(t, p2)
	assert.Empty(t, p2.String(), "Get() must return a reset builder")
	Put(p2)

	Put(nil) // Should not panic
}

func TestBuild(t *testing.T) {
	got := Build(func(b *PathBuilder) {
		b.Push("pipeline")
		b.Push("stages")
		b.Push("PARALLEL")
		b.PushQualified("stage", "identifier", "deploy_eu")
	})
	assert.Equal(t, "pipeline.stages.PARALLEL.stage[identifier:deploy_eu]", got)

	assert.Empty(t, Build(func(*PathBuilder) {}))
}

func TestPool_OversizedNotPooled(t *testing.T) {
	p := Get()
	for range maxPathCap + 1 {
		p.Push("x")
	}
	Put(p) // dropped rather than pooled

	p2 := Get()
	assert.Zero(t, p2.Len())
	Put(p2)
}
