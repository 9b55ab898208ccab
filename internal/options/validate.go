// Package options provides checks shared by the functional option layers
// and the other places that accept a document from one of several sources.
package options

import (
	"fmt"
	"strings"
)

// Source is one way of supplying an input document.
type Source struct {
	// Name is how the caller spells the source, such as "WithFilePath"
	// or "file".
	Name string
	// Set reports whether the caller supplied it.
	Set bool
}

// Provided returns the Source called name, set when set is true.
func Provided(name string, set bool) Source {
	return Source{Name: name, Set: set}
}

// RequireOne returns an error unless exactly one of sources is set. The
// error for no source lists every alternative; the error for several names
// the ones that were set.
func RequireOne(sources ...Source) error {
	var all, set []string
	for _, s := range sources {
		all = append(all, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("no input source specified (use one of %s)", strings.Join(all, ", "))
	default:
		return fmt.Errorf("exactly one input source must be specified, got %d (%s)", len(set), strings.Join(set, ", "))
	}
}
