// Package scope restricts flattened documents to selected list branches.
//
// A typical use is running only some stages of a pipeline: the caller names
// the stage identifiers to keep and every other stage, including stages
// inside parallel groups, is dropped from the base document, the template
// and the overrides before they are merged. A parallel group that loses all
// of its stages disappears when the document is rebuilt.
//
// Identity values are compared after Unicode NFC normalization, so a
// precomposed "é" in a document matches a decomposed "é" in the selection.
package scope

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/tree"
)

// Mode selects which identity segments of a path must be allowed.
type Mode uint8

const (
	// Outermost keeps a path when its first identity segment is allowed.
	// Everything below a kept branch is kept with it.
	Outermost Mode = iota
	// Every keeps a path only when all of its identity segments are allowed.
	Every
)

// String returns the mode name used by ParseMode.
func (m Mode) String() string {
	switch m {
	case Outermost:
		return "outermost"
	case Every:
		return "every"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode returns the Mode named by s. The empty string selects Outermost.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outermost":
		return Outermost, nil
	case "every":
		return Every, nil
	default:
		return Outermost, fmt.Errorf("scope: unknown mode %q (expected outermost or every)", s)
	}
}

// Set is a normalized set of allowed identity values.
type Set map[string]struct{}

// NewSet returns the set of the given identity values.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[norm.NFC.String(id)] = struct{}{}
	}
	return s
}

// Contains reports whether id is allowed.
func (s Set) Contains(id string) bool {
	_, ok := s[norm.NFC.String(id)]
	return ok
}

// RestrictToIdentities returns the entries of m that belong to allowed
// branches, in their original order. Entries whose path has no identity
// segment are always kept.
//
// Only the outermost identity segment is checked, so every step of an
// allowed stage is kept. To require every identity segment at any depth to
// be allowed, use RestrictWithMode(m, allowed, Every).
func RestrictToIdentities(m *fqn.Map, allowed Set) *fqn.Map {
	return RestrictWithMode(m, allowed, Outermost)
}

// RestrictWithMode is RestrictToIdentities with an explicit Mode.
func RestrictWithMode(m *fqn.Map, allowed Set, mode Mode) *fqn.Map {
	return m.Filter(func(p fqn.Path, _ *tree.Node) bool {
		return Allows(p, allowed, mode)
	})
}

// Allows reports whether p belongs to an allowed branch.
func Allows(p fqn.Path, allowed Set, mode Mode) bool {
	for _, seg := range p {
		if !seg.IsIdentity() {
			continue
		}
		if !allowed.Contains(seg.IDValue) {
			return false
		}
		if mode == Outermost {
			return true
		}
	}
	return true
}
