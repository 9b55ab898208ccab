package fqn

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stepPath() Path {
	return NewPath(
		Key("pipeline"),
		Key("stages"),
		EmbeddedKey("stage", IdentifierField, "build"),
		Key("spec"),
		Key("execution"),
		Key("steps"),
		Parallel(),
		EmbeddedKey("step", IdentifierField, "lint"),
		Key("timeout"),
	)
}

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{
			name: "plain keys",
			path: Keys("pipeline", "name"),
			want: "pipeline.name",
		},
		{
			name: "embedded key and parallel",
			path: stepPath(),
			want: "pipeline.stages.stage[identifier:build].spec.execution.steps.PARALLEL.step[identifier:lint].timeout",
		},
		{
			name: "list id",
			path: NewPath(Key("pipeline"), Key("variables"), ListID(NameField, "region"), Key("value")),
			want: "pipeline.variables.[name:region].value",
		},
		{
			name: "empty",
			path: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPathExpression(t *testing.T) {
	assert.Equal(t, "pipeline.stages.build.spec.execution.steps.lint.timeout", stepPath().Expression())
	assert.Equal(t, "pipeline.variables.region.value",
		NewPath(Key("pipeline"), Key("variables"), ListID(NameField, "region"), Key("value")).Expression())
}

func TestPathKeyIsInjective(t *testing.T) {
	paths := []Path{
		Keys("a.b"),
		Keys("a", "b"),
		NewPath(ListID("a", "b")),
		NewPath(EmbeddedKey("", "a", "b")),
		NewPath(Key("a[b:c]")),
		NewPath(EmbeddedKey("a", "b", "c")),
		NewPath(Key("PARALLEL")),
		NewPath(Parallel()),
		NewPath(Key("1:a")),
		NewPath(Key("1"), Key("a")),
	}

	seen := make(map[string]int)
	for i, p := range paths {
		if j, ok := seen[p.Key()]; ok {
			t.Fatalf("paths %d (%s) and %d (%s) share key %q", j, paths[j], i, p, p.Key())
		}
		seen[p.Key()] = i
	}
}

func TestPathAppendDoesNotAlias(t *testing.T) {
	base := make(Path, 0, 8)
	base = append(base, Key("a"))

	left := base.Append(Key("left"))
	right := base.Append(Key("right"))

	assert.Equal(t, "a.left", left.String())
	assert.Equal(t, "a.right", right.String())
	assert.Equal(t, "a", base.String())
}

func TestPathParentAndLast(t *testing.T) {
	p := Keys("a", "b", "c")

	assert.Equal(t, Keys("a", "b"), p.Parent())
	assert.Equal(t, Key("c"), p.Last())
	assert.Nil(t, Keys("a").Parent())
	assert.Equal(t, Segment{}, Path(nil).Last())

	// Appending to a parent must not overwrite the child.
	_ = append(p.Parent(), Key("x"))
	assert.Equal(t, "a.b.c", p.String())
}

func TestPathHasPrefix(t *testing.T) {
	p := stepPath()

	assert.True(t, p.HasPrefix(p))
	assert.True(t, p.HasPrefix(Keys("pipeline", "stages")))
	assert.True(t, p.HasPrefix(nil))
	assert.False(t, p.HasPrefix(Keys("pipeline", "variables")))
	assert.False(t, Keys("pipeline").HasPrefix(p))
}

func TestPathCompare(t *testing.T) {
	paths := []Path{
		Keys("b"),
		Keys("a", "z"),
		Keys("a"),
		NewPath(Key("a"), ListID("name", "x")),
	}
	slices.SortFunc(paths, Path.Compare)

	got := make([]string, len(paths))
	for i, p := range paths {
		got[i] = p.String()
	}
	assert.Equal(t, []string{"a", "a.z", "a.[name:x]", "b"}, got)
	assert.Equal(t, 0, Keys("a", "b").Compare(Keys("a", "b")))
}

func TestPathStructuralMarkers(t *testing.T) {
	tests := []struct {
		name       string
		path       Path
		identifier bool
		isType     bool
	}{
		{
			name:       "identifier field",
			path:       NewPath(Key("pipeline"), Key("identifier")),
			identifier: true,
		},
		{
			name:       "variable name",
			path:       NewPath(Key("variables"), ListID(NameField, "v1"), Key("name")),
			identifier: true,
		},
		{
			name:       "key-identified element",
			path:       NewPath(Key("headers"), ListID(KeyField, "h1"), Key("key")),
			identifier: true,
		},
		{
			name: "name of an identifier-addressed element",
			path: NewPath(Key("stages"), ListID(IdentifierField, "s1"), Key("name")),
		},
		{
			name: "plain name field",
			path: Keys("pipeline", "name"),
		},
		{
			name:   "type field",
			path:   NewPath(Key("stages"), EmbeddedKey("stage", IdentifierField, "s1"), Key("type")),
			isType: true,
		},
		{
			name: "single segment name",
			path: Keys("name"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.identifier, tt.path.IsIdentifierOrVariableName())
			assert.Equal(t, tt.isType, tt.path.IsType())
			assert.Equal(t, tt.identifier || tt.isType, tt.path.IsStructural())
		})
	}
}

func TestPathOutermostIdentity(t *testing.T) {
	seg, ok := stepPath().OutermostIdentity()
	assert.True(t, ok)
	assert.Equal(t, "build", seg.IDValue)

	_, ok = Keys("pipeline", "name").OutermostIdentity()
	assert.False(t, ok)
}

func TestSegmentKindString(t *testing.T) {
	assert.Equal(t, "key", KindKey.String())
	assert.Equal(t, "embeddedKey", KindEmbeddedKey.String())
	assert.Equal(t, "listId", KindListID.String())
	assert.Equal(t, "parallel", KindParallel.String())
	assert.Equal(t, "unknown", SegmentKind(99).String())
}
