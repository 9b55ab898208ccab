package flatten

import (
	"fmt"

	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/inputerrors"
	"github.com/erraggy/inputsets/tree"
)

// DefaultMaxDepth is the nesting depth limit used when none is configured.
const DefaultMaxDepth = 1000

// Result is a flattened document: the ordered leaf map together with the
// tree it was derived from. The tree is kept as the structural reference
// Build needs to reconstruct documents from edited maps.
type Result struct {
	// Root is the flattened document. It must not be modified.
	Root *tree.Node
	// Map holds every leaf of Root in depth-first declaration order.
	Map *fqn.Map
}

// Flattener converts trees into path maps.
//
// The zero value is ready to use and applies the default identity rules.
type Flattener struct {
	// KeyResolvers decides the identity of elements in lists of multi-key
	// objects. Resolvers are tried in order; nil means DefaultKeyResolvers.
	KeyResolvers []KeyResolver
	// MaxDepth bounds the nesting depth of accepted documents; 0 means
	// DefaultMaxDepth.
	MaxDepth int
	// SourceName identifies the document in error messages.
	SourceName string
}

// New creates a Flattener with default settings.
func New() *Flattener {
	return &Flattener{}
}

// Flatten flattens root using the given options.
//
// Example:
//
//	res, err := flatten.Flatten(doc, flatten.WithSourceName("pipeline.yaml"))
func Flatten(root *tree.Node, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("flatten: invalid options: %w", err)
	}
	f := &Flattener{
		KeyResolvers: cfg.keyResolvers,
		MaxDepth:     cfg.maxDepth,
		SourceName:   cfg.sourceName,
	}
	return f.Flatten(root)
}

// frame is one pending position of the traversal.
type frame struct {
	node  *tree.Node
	path  fqn.Path
	depth int
}

// Flatten walks root depth-first and records every leaf under its path.
//
// A nil root, or a root that is itself a leaf, yields an empty map since a
// path is never empty.
func (f *Flattener) Flatten(root *tree.Node) (*Result, error) {
	resolvers := f.KeyResolvers
	if resolvers == nil {
		resolvers = DefaultKeyResolvers()
	}
	maxDepth := f.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	out := fqn.NewMap()
	if root == nil || root.IsLeaf() {
		return &Result{Root: root, Map: out}, nil
	}

	// Children are pushed in reverse so they pop in declaration order.
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.depth > maxDepth {
			return nil, &inputerrors.ResourceLimitError{
				ResourceType: "nesting_depth",
				Limit:        int64(maxDepth),
				Actual:       int64(fr.depth),
				Message:      fmt.Sprintf("at %s", fr.path),
			}
		}

		node := fr.node
		if node == nil {
			node = tree.Null()
		}

		if len(fr.path) > 0 && node.IsLeaf() {
			if err := f.record(out, fr.path, node); err != nil {
				return nil, err
			}
			continue
		}

		switch node.Kind {
		case tree.KindObject:
			for i := len(node.Fields) - 1; i >= 0; i-- {
				fld := node.Fields[i]
				stack = append(stack, frame{
					node:  fld.Value,
					path:  fr.path.Append(fqn.Key(fld.Key)),
					depth: fr.depth + 1,
				})
			}

		case tree.KindArray:
			children, opaque := f.expandList(resolvers, node, fr)
			if opaque {
				if err := f.record(out, fr.path, node); err != nil {
					return nil, err
				}
				continue
			}
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}

		default:
			if err := f.record(out, fr.path, node); err != nil {
				return nil, err
			}
		}
	}

	return &Result{Root: root, Map: out}, nil
}

// expandList returns the frames for the elements of an identifiable list,
// or opaque=true when the list must be recorded as a single leaf.
func (f *Flattener) expandList(resolvers []KeyResolver, list *tree.Node, parent frame) ([]frame, bool) {
	mode := classifyList(resolvers, list.Items)
	if mode == listOpaque {
		return nil, true
	}

	frames := make([]frame, 0, len(list.Items))
	for _, item := range list.Items {
		if mode == listByID {
			seg, _ := resolveElement(resolvers, item)
			frames = append(frames, frame{
				node:  item,
				path:  parent.path.Append(seg),
				depth: parent.depth + 1,
			})
			continue
		}

		w, _ := wrapper(item)
		if isParallel(w) {
			frames = append(frames, frame{
				node:  w.Value,
				path:  parent.path.Append(fqn.Parallel()),
				depth: parent.depth + 1,
			})
			continue
		}
		id := w.Value.Get(fqn.IdentifierField).Text()
		frames = append(frames, frame{
			node:  w.Value,
			path:  parent.path.Append(fqn.EmbeddedKey(w.Key, fqn.IdentifierField, id)),
			depth: parent.depth + 1,
		})
	}
	return frames, false
}

func (f *Flattener) record(out *fqn.Map, p fqn.Path, v *tree.Node) error {
	if out.Has(p) {
		return &inputerrors.DuplicatePathError{Path: p.String(), Source: f.SourceName}
	}
	out.Set(p, v)
	return nil
}
