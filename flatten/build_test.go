package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/internal/testutil"
	"github.com/erraggy/inputsets/tree"
)

func assertTreeEqual(t *testing.T, want, got *tree.Node) {
	t.Helper()
	if tree.Equal(want, got) {
		return
	}
	wantYAML, _ := yaml.Marshal(want)
	gotYAML, _ := yaml.Marshal(got)
	assert.Equal(t, string(wantYAML), string(gotYAML))
}

func TestBuildRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "pipeline", src: testutil.PipelineYAML},
		{name: "input set", src: testutil.InputSetYAML},
		{
			name: "leaves and opaque lists",
			src: `
a:
  empty: {}
  none: []
  nothing: null
  tags: [x, y]
  matrix:
    - stage:
        name: no-identifier
  b:
    c: 1.5
    d: true
`,
		},
		{
			name: "empty parallel group",
			src: `
stages:
  - stage:
      identifier: a
      x: 1
  - parallel: []
`,
		},
		{
			name: "single-key elements",
			src: `
list:
  - name: a
  - name: b
`,
		},
		{
			name: "top-level list",
			src: `
- name: a
  value: 1
- name: b
  value: 2
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.MustParseYAML(t, tt.src)
			res, err := Flatten(doc)
			require.NoError(t, err)

			assertTreeEqual(t, doc, Build(res.Map, res.Root))
		})
	}
}

func TestBuildEmptyMap(t *testing.T) {
	doc := testutil.NewPipeline(t)
	assert.Nil(t, Build(fqn.NewMap(), doc))
	assert.Nil(t, Build(nil, doc))
}

func TestBuildPrunesAndReinjectsIdentity(t *testing.T) {
	doc := testutil.NewPipeline(t)
	res, err := Flatten(doc)
	require.NoError(t, err)

	m := res.Map.Filter(func(p fqn.Path, _ *tree.Node) bool {
		last := p.Last()
		return last.IsKey("image") || last.IsKey("value") && p.HasPrefix(fqn.NewPath(
			fqn.Key("pipeline"), fqn.Key("variables"), fqn.ListID(fqn.NameField, "region")))
	})
	require.Equal(t, 2, m.Len())

	want := testutil.MustParseYAML(t, `
pipeline:
  variables:
    - name: region
      type: String
      value: <+input>.allowedValues(us-east-1,eu-west-1)
  stages:
    - stage:
        identifier: build
        type: CI
        spec:
          execution:
            steps:
              - step:
                  identifier: compile
                  type: Run
                  spec:
                    image: <+input>
`)
	assertTreeEqual(t, want, Build(m, res.Root))
}

func TestBuildDropsEmptyParallelGroup(t *testing.T) {
	doc := testutil.NewPipeline(t)
	res, err := Flatten(doc)
	require.NoError(t, err)

	onlyBuild := res.Map.Filter(func(p fqn.Path, _ *tree.Node) bool {
		seg, ok := p.OutermostIdentity()
		return ok && seg.IDValue == "build"
	})
	built := Build(onlyBuild, res.Root)
	stages := built.Get("pipeline").Get("stages")
	require.NotNil(t, stages)
	assert.Equal(t, 1, stages.Len(), "parallel wrapper without children must disappear")

	onlyEU := res.Map.Filter(func(p fqn.Path, _ *tree.Node) bool {
		seg, ok := p.OutermostIdentity()
		return ok && seg.IDValue == "deploy_eu"
	})
	built = Build(onlyEU, res.Root)
	stages = built.Get("pipeline").Get("stages")
	require.Equal(t, 1, stages.Len())
	group := stages.Items[0].Get("parallel")
	require.NotNil(t, group)
	require.Equal(t, 1, group.Len())
	assert.Equal(t, "deploy_eu", group.Items[0].Get("stage").Get("identifier").Value)
}

func TestBuildSubstitutesValues(t *testing.T) {
	doc := testutil.MustParseYAML(t, `
pipeline:
  timeout: <+input>
  spec:
    nested: <+input>
`)
	res, err := Flatten(doc)
	require.NoError(t, err)

	m := fqn.NewMap()
	m.Set(fqn.Keys("pipeline", "timeout"), tree.String("10m"))
	m.Set(fqn.Keys("pipeline", "spec"), tree.Object(tree.F("nested", tree.String("x")), tree.F("added", tree.Scalar(1))))

	want := testutil.MustParseYAML(t, `
pipeline:
  timeout: 10m
  spec:
    nested: x
    added: 1
`)
	assertTreeEqual(t, want, Build(m, res.Root))
}

func TestBuildAppendsNewKeys(t *testing.T) {
	doc := testutil.MustParseYAML(t, `
pipeline:
  name: demo
  properties:
    ci: {}
`)
	res, err := Flatten(doc)
	require.NoError(t, err)

	m := res.Map.Clone()
	m.Set(fqn.Keys("pipeline", "properties", "ci", "codebase", "build"), tree.String("main"))
	m.Set(fqn.Keys("pipeline", "description"), tree.String("added"))

	want := testutil.MustParseYAML(t, `
pipeline:
  name: demo
  properties:
    ci:
      codebase:
        build: main
  description: added
`)
	assertTreeEqual(t, want, Build(m, res.Root))
}

func TestBuildSynthesizesListElements(t *testing.T) {
	m := fqn.NewMap()
	m.Set(fqn.NewPath(fqn.Key("vars"), fqn.ListID(fqn.NameField, "a"), fqn.Key("value")), tree.Scalar(1))
	m.Set(fqn.NewPath(fqn.Key("stages"), fqn.Parallel(), fqn.EmbeddedKey("stage", fqn.IdentifierField, "s1"), fqn.Key("x")), tree.Scalar(2))

	want := testutil.MustParseYAML(t, `
vars:
  - name: a
    value: 1
stages:
  - parallel:
      - stage:
          identifier: s1
          x: 2
`)
	assertTreeEqual(t, want, Build(m, nil))
}
