package merger

import (
	"fmt"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/scope"
	"github.com/erraggy/inputsets/template"
	"github.com/erraggy/inputsets/tree"
	"github.com/erraggy/inputsets/validator"
)

// Merger merges flattened documents.
type Merger struct {
	// AppendValidator keeps template validator clauses on override values.
	AppendValidator bool
	// Matcher recognizes runtime-input placeholders; nil means the default grammar.
	Matcher placeholder.Matcher
	// Logger receives diagnostics; nil disables logging.
	Logger inputsets.Logger
	// KeyResolvers must match the ones the override was flattened with; nil
	// means the default identity rules.
	KeyResolvers []flatten.KeyResolver
}

// New creates a Merger with default settings.
func New() *Merger {
	return &Merger{}
}

// Merge merges override into base, letting override set only the paths of
// template. The result is a new map in base order; none of the inputs is
// modified.
func Merge(base, template *fqn.Map, override *flatten.Result, opts ...Option) (*fqn.Map, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("merger: invalid options: %w", err)
	}
	return cfg.merger().Merge(base, template, override), nil
}

// Merge merges override into base. See the package documentation for the
// rules.
func (m *Merger) Merge(base, template *fqn.Map, override *flatten.Result) *fqn.Map {
	matcher := m.Matcher
	if matcher == nil {
		matcher = placeholder.Default()
	}
	logger := inputsets.OrNop(m.Logger)

	var overrides *fqn.Map
	var overrideRoot *tree.Node
	if override != nil {
		overrides, overrideRoot = override.Map, override.Root
	}

	out := fqn.NewMap()
	for p, bv := range base.All() {
		tv, inTemplate := template.Get(p)
		if !inTemplate {
			out.Set(p, bv)
			continue
		}

		if ov, ok := overrides.Get(p); ok {
			if p.IsStructural() {
				out.Set(p, bv)
				continue
			}
			out.Set(p, m.overrideValue(matcher, logger, p, tv, ov))
			continue
		}

		if overrides.HasDescendant(p) {
			if sub, ok := m.subtree(overrides, overrideRoot, p); ok {
				out.Set(p, sub)
				continue
			}
		}
		out.Set(p, bv)
	}
	return out
}

// subtree rebuilds the override node at p from the entries of overrides
// below p only, so entries a scope restriction removed stay out of the
// substituted value.
func (m *Merger) subtree(overrides *fqn.Map, overrideRoot *tree.Node, p fqn.Path) (*tree.Node, bool) {
	built := (&flatten.Builder{KeyResolvers: m.KeyResolvers}).Build(overrides.Under(p), overrideRoot)
	return flatten.Lookup(built, p)
}

// overrideValue returns the value to store for an override of template
// value tv.
func (m *Merger) overrideValue(matcher placeholder.Matcher, logger inputsets.Logger, p fqn.Path, tv, ov *tree.Node) *tree.Node {
	if !m.AppendValidator || !ov.IsScalar() || ov.Value == nil || placeholder.IsExpression(ov) {
		return ov
	}
	if !placeholder.IsRuntimeInput(matcher, tv) {
		return ov
	}

	expr, err := matcher.Parse(tv.Text())
	if err != nil {
		logger.Warn("keeping override value without validator",
			"path", p.String(),
			"error", err,
		)
		return ov
	}
	if !expr.HasValidator() {
		return ov
	}
	return tree.String(expr.Attach(ov.Text()))
}

// Result is the outcome of MergeOverrides.
type Result struct {
	// Document is the merged document. It is nil when nothing survives the
	// scope restriction.
	Document *tree.Node
	// Map is the flattened form of Document.
	Map *fqn.Map
	// InvalidPaths lists override paths the template does not expose, in
	// the order the overrides mention them, without duplicates. The
	// corresponding values were ignored.
	InvalidPaths []fqn.Path
}

// InvalidPathStrings returns the display form of InvalidPaths.
func (r *Result) InvalidPathStrings() []string {
	out := make([]string, len(r.InvalidPaths))
	for i, p := range r.InvalidPaths {
		out[i] = p.String()
	}
	return out
}

// MergeOverrides merges overrides, in order, into base. The template is taken
// from base once, so an override can fill a placeholder that an earlier
// override already filled.
func MergeOverrides(base *tree.Node, overrides []*tree.Node, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("merger: invalid options: %w", err)
	}

	f := &flatten.Flattener{KeyResolvers: cfg.keyResolvers, MaxDepth: cfg.maxDepth, SourceName: "base"}
	baseRes, err := f.Flatten(base)
	if err != nil {
		return nil, fmt.Errorf("merger: %w", err)
	}

	restrict := func(m *fqn.Map) *fqn.Map { return m }
	if cfg.scope != nil {
		restrict = func(m *fqn.Map) *fqn.Map { return scope.RestrictWithMode(m, cfg.scope, cfg.scopeMode) }
	}

	current := restrict(baseRes.Map)
	tmpl := template.Extract(current, true, cfg.matcher)
	merger := cfg.merger()

	result := &Result{}
	seen := make(map[string]struct{})
	for i, doc := range overrides {
		f.SourceName = fmt.Sprintf("override %d", i+1)
		overRes, err := f.Flatten(doc)
		if err != nil {
			return nil, fmt.Errorf("merger: %w", err)
		}
		overRes = &flatten.Result{Root: overRes.Root, Map: restrict(overRes.Map)}

		for _, p := range validator.InvalidPaths(tmpl, overRes.Map) {
			if _, dup := seen[p.Key()]; dup {
				continue
			}
			seen[p.Key()] = struct{}{}
			result.InvalidPaths = append(result.InvalidPaths, p)
		}

		current = merger.Merge(current, tmpl, overRes)
	}

	result.Map = current
	result.Document = (&flatten.Builder{KeyResolvers: cfg.keyResolvers}).Build(current, baseRes.Root)
	cfg.logger.Debug("merged overrides",
		"overrides", len(overrides),
		"templateEntries", tmpl.Len(),
		"invalidPaths", len(result.InvalidPaths),
	)
	return result, nil
}
